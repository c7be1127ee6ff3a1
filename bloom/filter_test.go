package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/webchunk/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("first paragraph"), "new text is not seen")
	assert.True(t, f.TestAndAdd("first paragraph"), "repeated text is seen")
	assert.False(t, f.TestAndAdd("second paragraph"))
}

func TestFilter_RepeatedTextStaysSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	f.TestAndAdd("repeated heading")

	for range 3 {
		assert.True(t, f.TestAndAdd("repeated heading"))
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := range 1000 {
		f.TestAndAdd(fmt.Sprintf("added chunk %d", i))
	}

	falsePositives := 0
	for i := range 200 {
		if f.TestAndAdd(fmt.Sprintf("other chunk %d", i)) {
			falsePositives++
		}
	}

	assert.Less(t, falsePositives, 20, "false positive rate too high: %d/200", falsePositives)
}
