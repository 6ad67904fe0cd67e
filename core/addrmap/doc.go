// Package addrmap loads the list of byte ranges that hold string records.
//
// Each line of the file is "<start>-<end>" in base 10. Start is the offset of the first
// string's data (the length prefix is the byte before it) and end is one past the last
// string's data. Ranges are returned in file order, which is the order the scanner walks them.
//
// A malformed line is a *FormatError. There is no partial result: a wrong address map would
// shift every offset downstream.
package addrmap
