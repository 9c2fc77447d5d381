// Package match provides name normalization, Levenshtein distance and
// near-miss suggestions for names referenced by a mapping.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so "User_ID" and "userId" compare equal
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names that are close to an unknown one
package match
