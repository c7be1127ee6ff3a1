// Package bloom provides chunk text deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for deduplicating chunk text.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether text might already be in the filter and adds
// it in the same step.
func (f *Filter) TestAndAdd(text string) bool {
	return f.f.TestAndAddString(text)
}
