// Package nql holds the lexical pieces shared by the schema and data
// statement builders for the NebulaGraph query language: identifier rules,
// quoting, string literal escaping and the catalog of native property types.
package nql
