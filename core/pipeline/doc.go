// Package pipeline runs one translation pass end to end.
//
// A run reads the address ranges, scans the original binary and the output of the previous
// run, reconciles both with the translation table and then regenerates the table and the
// patched binary. The output path defaults to the previously patched path, so successive runs
// converge: translations typed into the table are padded in, and translations only present in
// the patched binary are recovered into the table.
package pipeline
