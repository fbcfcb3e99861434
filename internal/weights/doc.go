// Package weights reads constant payloads for graph descriptions from
// SafeTensors files.
//
// File layout:
//
//	[8 bytes: header size N (uint64 LE)]
//	[N bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The header maps tensor names to dtype, shape and [start, end) offsets
// into the data section, plus an optional "__metadata__" string map.
// Headers are validated before any payload is handed out: names must be
// plain identifiers and payload regions must be in bounds and disjoint.
package weights
