// Package sorting orders bid slices by title in place.
package sorting

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gaut2172/bidindex/internal/bid"
)

var ErrUnknownAlgorithm = errors.New("unknown sort algorithm")

// Algorithm names a sort implementation.
type Algorithm int

const (
	Quick Algorithm = iota
	Selection
)

var availableAlgorithms = []string{"quick", "selection"}

func (a Algorithm) String() string {
	return availableAlgorithms[a]
}

func ParseAlgorithm(s string) (Algorithm, error) {
	i := slices.Index(availableAlgorithms, s)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q, want one of %v", ErrUnknownAlgorithm, s, availableAlgorithms)
	}

	return Algorithm(i), nil
}

// Sort dispatches to the implementation named by a.
func (a Algorithm) Sort(bids []bid.Bid) {
	switch a {
	case Selection:
		SelectionSort(bids)
	default:
		QuickSort(bids)
	}
}

// SelectionSort sorts bids by title. O(n²) comparisons, at most n swaps.
func SelectionSort(bids []bid.Bid) {
	for i := range bids {
		lowest := i
		for j := i + 1; j < len(bids); j++ {
			if bids[j].Title < bids[lowest].Title {
				lowest = j
			}
		}

		if lowest != i {
			bids[i], bids[lowest] = bids[lowest], bids[i]
		}
	}
}

// QuickSort sorts bids by title using middle-element Hoare partitioning.
// Average O(n log n), worst case O(n²).
func QuickSort(bids []bid.Bid) {
	quickSort(bids, 0, len(bids)-1)
}

func quickSort(bids []bid.Bid, begin, end int) {
	for begin < end {
		mid := partition(bids, begin, end)

		// Recurse into the smaller half to bound the stack depth.
		if mid-begin < end-mid {
			quickSort(bids, begin, mid)
			begin = mid + 1
		} else {
			quickSort(bids, mid+1, end)
			end = mid
		}
	}
}

// partition returns the last index of the low partition.
func partition(bids []bid.Bid, begin, end int) int {
	pivot := bids[begin+(end-begin)/2].Title
	low, high := begin, end

	for {
		for bids[low].Title < pivot {
			low++
		}
		for pivot < bids[high].Title {
			high--
		}

		if low >= high {
			return high
		}

		bids[low], bids[high] = bids[high], bids[low]
		low++
		high--
	}
}
