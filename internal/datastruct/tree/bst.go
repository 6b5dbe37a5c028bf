package tree

import (
	"iter"

	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/gaut2172/bidindex/internal/datastruct"
)

var _ SearchTree = (*BinarySearchTree)(nil)

// BinarySearchTree is an unbalanced binary search tree keyed by bid ID.
// Keys compare lexicographically. Equal keys go to the right subtree, so
// duplicates are kept as separate nodes and only the one nearest the root is
// reachable through Search.
//
// It is not safe for concurrent use.
type BinarySearchTree struct {
	root *bidNode
	size int
}

// NewBinarySearchTree creates a new, empty tree.
func NewBinarySearchTree() *BinarySearchTree {
	return &BinarySearchTree{}
}

// Insert adds b to the tree.
// The descent is iterative so trees built from sorted input do not grow the
// call stack.
func (t *BinarySearchTree) Insert(b bid.Bid) {
	t.size++

	if t.root == nil {
		t.root = newBidNode(b)
		return
	}

	node := t.root
	for {
		if b.ID < node.key() {
			if node.left == nil {
				node.left = newBidNode(b)
				return
			}
			node = node.left
		} else {
			if node.right == nil {
				node.right = newBidNode(b)
				return
			}
			node = node.right
		}
	}
}

// Search returns the bid stored under id, or the sentinel if there is none.
func (t *BinarySearchTree) Search(id string) bid.Bid {
	node := t.root
	for node != nil {
		switch {
		case id == node.key():
			return node.bid
		case id < node.key():
			node = node.left
		default:
			node = node.right
		}
	}

	return bid.Empty()
}

// Remove deletes the first node found for id.
func (t *BinarySearchTree) Remove(id string) datastruct.RemoveResult {
	if t.root == nil {
		return datastruct.Empty
	}

	var removed bool
	t.root = t.removeNode(t.root, id, &removed)
	if !removed {
		return datastruct.NotFound
	}

	t.size--
	return datastruct.Removed
}

// removeNode removes id from the subtree rooted at node and returns the new
// subtree root.
func (t *BinarySearchTree) removeNode(node *bidNode, id string, removed *bool) *bidNode {
	if node == nil {
		return nil
	}

	switch {
	case id < node.key():
		node.left = t.removeNode(node.left, id, removed)
		return node
	case id > node.key():
		node.right = t.removeNode(node.right, id, removed)
		return node
	}

	*removed = true

	switch {
	case node.left == nil && node.right == nil:
		return nil
	case node.right == nil:
		return node.left
	case node.left == nil:
		return node.right
	}

	// Two children: take over the in-order successor's bid, then remove the
	// successor from the right subtree. The successor has no left child.
	successor := node.right
	for successor.left != nil {
		successor = successor.left
	}
	node.bid = successor.bid

	var ignored bool
	node.right = t.removeNode(node.right, successor.key(), &ignored)

	return node
}

// All yields the bids in ascending key order, duplicates included.
func (t *BinarySearchTree) All() iter.Seq[bid.Bid] {
	return func(yield func(bid.Bid) bool) {
		var stack []*bidNode
		node := t.root

		for node != nil || len(stack) > 0 {
			for node != nil {
				stack = append(stack, node)
				node = node.left
			}

			node = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(node.bid) {
				return
			}

			node = node.right
		}
	}
}

func (t *BinarySearchTree) Len() int {
	return t.size
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *BinarySearchTree) Height() int {
	type frame struct {
		node  *bidNode
		depth int
	}

	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node == nil {
			continue
		}

		height = max(height, f.depth)
		stack = append(stack, frame{f.node.left, f.depth + 1}, frame{f.node.right, f.depth + 1})
	}

	return height
}

// Destroy releases every node in post-order, children before parents.
// An explicit stack keeps the depth off the call stack.
func (t *BinarySearchTree) Destroy() {
	if t.root == nil {
		return
	}

	stack := []*bidNode{t.root}
	var last *bidNode
	for len(stack) > 0 {
		node := stack[len(stack)-1]

		switch {
		case node.left != nil && last != node.left && last != node.right:
			stack = append(stack, node.left)
		case node.right != nil && last != node.right:
			stack = append(stack, node.right)
		default:
			stack = stack[:len(stack)-1]
			node.left, node.right = nil, nil
			node.bid = bid.Empty()
			last = node
		}
	}

	t.root = nil
	t.size = 0
}
