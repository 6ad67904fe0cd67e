// Package table persists the human-edited translation table.
//
// # File format
//
// Blocks are separated by one blank line. A block is either a single header line
//
//	<offset>\t<length>\t<original>
//
// for a string that is not translated yet, or the header followed by the translation on the
// next line. Text is escaped with Escape so that every block stays on its own lines; readers
// call Unescape before using it as a key.
//
// # Table
//
// Table is an ordered mapping from raw original bytes to raw translated bytes. Parse and Load
// read it; Write regenerates the file from the reconciled slots, translated strings first,
// and reports the completion Stats.
package table
