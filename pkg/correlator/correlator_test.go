package correlator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameRange(t *testing.T) {
	start, length := SameRange(8, 8)
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, length)

	start, length = SameRange(3, 2)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, length)

	start, length = SameRange(5, 11)
	assert.Equal(t, 2, start)
	assert.Equal(t, 11, length)
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 1, ArgMax([]int64{0, 3, 1, 3}))
	assert.Equal(t, 0, ArgMax([]int64{0, 0, 0}))
	assert.Equal(t, 2, ArgMax([]int64{-5, -3, -1}))
}

func TestBestLag(t *testing.T) {
	assert.Equal(t, 2, BestLag([]int64{0, 0, 0, 0, 0, 0, 1, 0}, 8))
	assert.Equal(t, -4, BestLag([]int64{1, 0, 0, 0, 0, 0, 0, 0}, 8))
}
