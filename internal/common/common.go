// Package common holds small helpers shared across the mapper packages.
package common

// UnknownStr is returned by String methods for values outside their enum.
const UnknownStr = "unknown"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](lo, value, hi T) bool {
	return lo <= value && value <= hi
}
