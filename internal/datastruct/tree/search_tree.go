package tree

import (
	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/gaut2172/bidindex/internal/datastruct"
)

// SearchTree is an ordered bid index.
type SearchTree interface {
	datastruct.Index
	// Height returns the number of nodes on the longest root-to-leaf path.
	Height() int
}

// bidNode represents a single node of the binary search tree.
// Each node owns its children exclusively.
type bidNode struct {
	bid   bid.Bid
	left  *bidNode
	right *bidNode
}

func newBidNode(b bid.Bid) *bidNode {
	return &bidNode{bid: b}
}

func (n *bidNode) key() string {
	return n.bid.ID
}
