// Package schema contains flatbuffers bindings for the subset of the TFLite
// model schema (version 3) that the lowering engine emits.
//
// The bindings follow the layout of flatc's object API: plain "T" structs
// ([ModelT], [SubGraphT], [TensorT], ...) are assembled in memory and
// serialized with their Pack methods, while the table types ([Model],
// [SubGraph], ...) read a finished buffer in place and can be unpacked back
// into T structs. Field slot numbers match tensorflow/lite/schema/schema.fbs.
//
// Only the tables, enums and builtin option types that are produced by the
// lowering engine are covered.
package schema
