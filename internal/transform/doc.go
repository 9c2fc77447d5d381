// Package transform implements named, parameterized value conversions that a
// mapping can attach to a property.
//
// A Registry maps transform names to Func values. NewRegistry returns one
// holding the built-ins:
//
//	time_format       parse with the "format" parameter, emit "YYYY-MM-DD HH:MM:SS"
//	price_normalize   keep digits only and parse as an integer
//	string_normalize  trim and collapse whitespace runs
//	array_join        split on "delimiter", trim parts, rejoin
//	to_boolean        true/1/yes and false/0/no, case-insensitive
//
// Every built-in first coerces its input to text. Registration must finish
// before a registry is shared with concurrent compiles.
package transform
