// Package bid defines the record type shared by the indexes, the CSV loader
// and the menu.
//
// Conventions:
//   - ID is the key; an empty ID marks the "not found" sentinel
//   - Amount is a non-negative decimal in dollars
package bid
