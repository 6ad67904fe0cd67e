// Package scan recovers length-prefixed string records from a flat binary image.
//
// A record is a single unsigned length byte L followed by L raw bytes with no terminator.
// For every address range the scanner places a cursor at the range start, reads the byte
// before the cursor as L, takes the next L bytes, and advances the cursor by L+1.
//
// The scanner never reads outside the buffer. In strict mode every range must also end
// exactly on a record boundary, which catches address maps that drifted from the binary.
package scan
