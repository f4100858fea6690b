package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/tropy/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("http://tvtropes.org/pmwiki/pmwiki.php/Film/Bright"))
	assert.True(t, f.TestAndAdd("http://tvtropes.org/pmwiki/pmwiki.php/Film/Bright"))
	assert.False(t, f.TestAndAdd("http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := range 50 {
		f.TestAndAdd(fmt.Sprintf("http://tvtropes.org/pmwiki/pmwiki.php/Main/Trope%d", i))
	}

	count := f.EstimatedCount()
	assert.GreaterOrEqual(t, count, uint(45))
	assert.LessOrEqual(t, count, uint(55))
}
