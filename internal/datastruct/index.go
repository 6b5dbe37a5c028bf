package datastruct

import (
	"iter"

	"github.com/gaut2172/bidindex/internal/bid"
)

// RemoveResult describes what a Remove call did.
// None of the outcomes is an error.
type RemoveResult int

const (
	Removed RemoveResult = iota
	NotFound
	Empty
)

func (r RemoveResult) String() string {
	return []string{"removed", "not found", "empty"}[r]
}

// Index is the contract shared by every bid index.
type Index interface {
	// Insert adds b. Existing bids with the same ID are kept, so a key may
	// appear more than once.
	Insert(b bid.Bid)
	// Search returns the first bid found for id, or the sentinel on a miss.
	Search(id string) bid.Bid
	// Remove deletes the first bid found for id.
	Remove(id string) RemoveResult
	// All yields every stored bid in the index's natural order.
	// The sequence is lazy and may be ranged over more than once.
	All() iter.Seq[bid.Bid]
	// Len returns the number of stored bids.
	Len() int
	// Destroy releases every node. Calling it again is a no-op.
	Destroy()
}
