package loaderstate

import (
	"context"
	"fmt"
	"runtime"

	"github.com/blockberries/loaderstate/types"
	"golang.org/x/sync/errgroup"
)

// ProgramBytes decodes the state at the front of account and returns the
// raw program bytes stored after it.
//
// Buffer and ProgramData accounts reserve room for a present authority,
// so program bytes start at the variant's MaxSize (37 and 45) whether
// or not the authority is set. Other variants carry no program bytes and
// yield a nil slice. The returned slice aliases account.
func ProgramBytes(account []byte) (types.UpgradeableLoaderState, []byte, error) {
	state, err := Decode(account)
	if err != nil {
		return nil, nil, err
	}

	switch state.(type) {
	case types.Buffer, types.ProgramData:
	default:
		return state, nil, nil
	}

	shape, _ := types.LookupShape(state.Discriminant())
	start := shape.MaxSize()
	if len(account) < start {
		return nil, nil, NewTruncatedInputError(shape.Name+" metadata", 0, start, len(account))
	}
	return state, account[start:], nil
}

// DecodeAll decodes independent account buffers in parallel. The result
// is index-aligned with accounts. If any buffer fails, DecodeAll returns
// only the first error, annotated with that buffer's index.
func DecodeAll(ctx context.Context, accounts [][]byte) ([]types.UpgradeableLoaderState, error) {
	out := make([]types.UpgradeableLoaderState, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, data := range accounts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			state, err := Decode(data)
			if err != nil {
				return fmt.Errorf("account %d: %w", i, err)
			}
			out[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait reports nil if the caller cancelled before any decode failed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
