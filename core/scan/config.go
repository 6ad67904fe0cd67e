package scan

// Config holds configuration for the string record scanner.
type Config struct {
	// Strict requires every range to end exactly on a record boundary.
	// When false, the last record of a range may run past the declared end.
	Strict bool `mapstructure:"strict" default:"true"`
}
