// Package dump reads and writes detector dump files.
//
// A dump is a flat, append-only sequence of records with no file header,
// no index and no checksum. Each record is an 8-byte little-endian signed
// length L followed by exactly L raw payload bytes. Random access requires
// a linear scan from the start of the file.
//
// [Store] holds the immutable bytes of one dump; [Cursor] walks them with a
// monotonic message index. A store may be shared by any number of
// independent cursors, but a single cursor is not safe for concurrent use.
package dump
