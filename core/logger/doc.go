// Package logger provides a structured logging facility based on Zap.
//
// # Run Correlation
//
// Every invocation of a command is one run. WithRunID attaches a run_id field (a random UUID
// from NewRunID) so that all lines of one run, including those written by remote storage or
// database steps, can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default, for terminals) or json
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Translation table written", zap.String("path", path))
package logger
