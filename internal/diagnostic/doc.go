// Package diagnostic provides structured errors and warnings produced by
// static checks over a graph mapping.
//
// Key capabilities:
//   - Error and warning collection with stable codes
//   - Element and path context for every finding
//   - "Did you mean" suggestions for misspelled names
package diagnostic
