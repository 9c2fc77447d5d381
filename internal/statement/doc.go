// Package statement compiles a document into data statements.
//
// A Compiler walks the vertex mappings, then the edge mappings, of a
// mapping in declaration order. Every record found under a source path
// becomes one row:
//
//	INSERT VERTEX `Place` (`cid`, `name`) VALUES "1":(1, "A");
//	INSERT EDGE `Comment` (`text`) VALUES "u1" -> "p1":("hi");
//	UPSERT VERTEX `Place` "1" (`cid`, `extra`) VALUES (1, true);
//
// Rows are batched into INSERT statements. Tags with dynamic fields are
// emitted as one UPSERT per record because each record may carry a different
// set of properties. The first failure aborts the whole compile and no
// statements are returned.
package statement
