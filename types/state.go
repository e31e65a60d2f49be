package types

// UpgradeableLoaderState is the decoded state of an account owned by the
// upgradeable program loader. It is implemented only by Uninitialized,
// Buffer, Program and ProgramData.
type UpgradeableLoaderState interface {
	// Discriminant returns the variant's wire ordinal.
	Discriminant() Discriminant

	loaderState()
}

// Compile-time interface checks.
var (
	_ UpgradeableLoaderState = Uninitialized{}
	_ UpgradeableLoaderState = Buffer{}
	_ UpgradeableLoaderState = Program{}
	_ UpgradeableLoaderState = ProgramData{}
)

// Uninitialized is an account the loader has not initialized yet.
type Uninitialized struct{}

// Buffer is a staging account holding program bytes before deployment.
// The raw program data follows the encoded record in the account.
type Buffer struct {
	// Authority allowed to write the buffer. Nil = immutable.
	AuthorityAddress *Pubkey
}

// Program is an executable program account.
type Program struct {
	// Address of the ProgramData account holding the executable.
	ProgramDataAddress Pubkey
}

// ProgramData holds a deployed program's executable bytes, which follow
// the encoded record in the account.
type ProgramData struct {
	// Slot in which the program was last modified.
	Slot uint64
	// Authority allowed to upgrade the program. Nil = not upgradeable.
	UpgradeAuthorityAddress *Pubkey
}

func (Uninitialized) Discriminant() Discriminant { return DiscriminantUninitialized }
func (Buffer) Discriminant() Discriminant        { return DiscriminantBuffer }
func (Program) Discriminant() Discriminant       { return DiscriminantProgram }
func (ProgramData) Discriminant() Discriminant   { return DiscriminantProgramData }

func (Uninitialized) loaderState() {}
func (Buffer) loaderState()        {}
func (Program) loaderState()       {}
func (ProgramData) loaderState()   {}
