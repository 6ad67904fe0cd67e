// Package memory keeps a translation memory in a SQL database so several translators can
// share their work.
//
// Entries are keyed by the sha256 of the original bytes. Push upserts a local table, Pull
// returns the whole memory as a table that can be merged under a local one.
package memory
