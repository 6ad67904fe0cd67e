package pipeline

// Files names the inputs and outputs of a run.
type Files struct {
	// Original is the untouched binary strings are read from.
	Original string `mapstructure:"original" default:"HW.EXE"`
	// Patched is the output of a previous run, used to recover translations.
	Patched string `mapstructure:"patched" default:"HW_EN.EXE"`
	// Output is where the patched binary is written. Empty means Patched.
	Output string `mapstructure:"output" default:""`
	// Addresses is the address range file.
	Addresses string `mapstructure:"addresses" default:"addresses.txt"`
	// Table is the translation table, read and regenerated.
	Table string `mapstructure:"table" default:"strings.txt"`
}

// OutputPath returns the path the patched binary is written to.
func (f Files) OutputPath() string {
	if f.Output == "" {
		return f.Patched
	}
	return f.Output
}
