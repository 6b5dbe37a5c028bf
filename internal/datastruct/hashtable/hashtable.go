package hashtable

import (
	"iter"
	"math"

	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/gaut2172/bidindex/internal/datastruct"
)

// DefaultCapacity is the bucket count used when none is given.
const DefaultCapacity = 179

var _ datastruct.Index = (*HashTable)(nil)

// chainNode is one entry of a bucket chain. Each node owns its successor.
type chainNode struct {
	bid    bid.Bid
	bucket int
	next   *chainNode
}

// HashTable is a fixed-size table of singly linked chains keyed by the
// numeric value of the bid ID. The bucket count never changes after
// construction, so chains grow without bound under load.
//
// A nil slot is an empty bucket.
//
// It is not safe for concurrent use.
type HashTable struct {
	buckets []*chainNode
	size    int
}

// NewHashTable creates a table with the given number of buckets.
// A zero capacity selects DefaultCapacity.
func NewHashTable(capacity uint16) *HashTable {
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	return &HashTable{
		buckets: make([]*chainNode, capacity),
	}
}

// Capacity returns the number of buckets.
func (h *HashTable) Capacity() int {
	return len(h.buckets)
}

// Hash maps id to its bucket.
func (h *HashTable) Hash(id string) int {
	return int(NumericKey(id) % uint64(len(h.buckets)))
}

// NumericKey parses the leading decimal digits of id.
// Leading spaces and a '+' sign are skipped. Anything without leading digits,
// negative numbers included, yields 0. Values too large for a uint64
// saturate.
func NumericKey(id string) uint64 {
	i := 0
	for i < len(id) && (id[i] == ' ' || id[i] == '\t') {
		i++
	}
	if i < len(id) && id[i] == '+' {
		i++
	}

	var n uint64
	for ; i < len(id) && '0' <= id[i] && id[i] <= '9'; i++ {
		d := uint64(id[i] - '0')
		if n > (math.MaxUint64-d)/10 {
			return math.MaxUint64
		}
		n = n*10 + d
	}

	return n
}

// Insert appends b to the tail of its bucket's chain.
func (h *HashTable) Insert(b bid.Bid) {
	key := h.Hash(b.ID)
	node := &chainNode{bid: b, bucket: key}
	h.size++

	if h.buckets[key] == nil {
		h.buckets[key] = node
		return
	}

	tail := h.buckets[key]
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = node
}

// Search returns the first bid in the chain whose ID is id.
func (h *HashTable) Search(id string) bid.Bid {
	for node := h.buckets[h.Hash(id)]; node != nil; node = node.next {
		if node.bid.ID == id {
			return node.bid
		}
	}

	return bid.Empty()
}

// Remove unlinks the first chain entry whose ID is id.
func (h *HashTable) Remove(id string) datastruct.RemoveResult {
	if h.size == 0 {
		return datastruct.Empty
	}

	key := h.Hash(id)
	head := h.buckets[key]
	if head == nil {
		return datastruct.NotFound
	}

	if head.bid.ID == id {
		h.buckets[key] = head.next
		head.next = nil
		h.size--
		return datastruct.Removed
	}

	prev := head
	for node := head.next; node != nil; prev, node = node, node.next {
		if node.bid.ID == id {
			prev.next = node.next
			node.next = nil
			h.size--
			return datastruct.Removed
		}
	}

	return datastruct.NotFound
}

// All yields every bid bucket by bucket, each chain in insertion order.
func (h *HashTable) All() iter.Seq[bid.Bid] {
	return func(yield func(bid.Bid) bool) {
		for _, b := range h.Entries() {
			if !yield(b) {
				return
			}
		}
	}
}

// Entries yields (bucket, bid) pairs in the same order as All.
func (h *HashTable) Entries() iter.Seq2[int, bid.Bid] {
	return func(yield func(int, bid.Bid) bool) {
		for _, head := range h.buckets {
			for node := head; node != nil; node = node.next {
				if !yield(node.bucket, node.bid) {
					return
				}
			}
		}
	}
}

// ChainLen returns the number of entries in bucket k.
func (h *HashTable) ChainLen(k int) int {
	n := 0
	for node := h.buckets[k]; node != nil; node = node.next {
		n++
	}
	return n
}

func (h *HashTable) Len() int {
	return h.size
}

// Destroy empties every bucket. The capacity is kept.
func (h *HashTable) Destroy() {
	for i, head := range h.buckets {
		for node := head; node != nil; {
			next := node.next
			node.next = nil
			node = next
		}
		h.buckets[i] = nil
	}
	h.size = 0
}
