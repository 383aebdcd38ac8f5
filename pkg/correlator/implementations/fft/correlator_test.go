package fft

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiosynch/pkg/correlator"
	"github.com/xaionaro-go/audiosynch/pkg/correlator/implementations/direct"
)

func TestCorrelateSame(t *testing.T) {
	ctx := context.Background()
	c := New()

	t.Run("small", func(t *testing.T) {
		result, err := c.CorrelateSame(ctx, []int32{1, 2, 3}, []int32{2, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 4, 7}, result)

		result, err = c.CorrelateSame(ctx, []int32{1, 2, 3}, []int32{1, 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 5}, result)
	})

	t.Run("matches direct", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		for _, size := range [][2]int{{8, 8}, {100, 37}, {37, 100}, {4000, 4000}, {3999, 4000}} {
			observed := make([]int32, size[0])
			reference := make([]int32, size[1])
			for i := range observed {
				if rng.Intn(7) == 0 {
					observed[i] = 1
				}
			}
			for i := range reference {
				if rng.Intn(7) == 0 {
					reference[i] = 1
				}
			}
			expected, err := direct.New().CorrelateSame(ctx, observed, reference)
			require.NoError(t, err)
			result, err := c.CorrelateSame(ctx, observed, reference)
			require.NoError(t, err)
			require.Equal(t, expected, result, "size %v", size)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := c.CorrelateSame(ctx, []int32{1}, nil)
		assert.ErrorIs(t, err, correlator.ErrEmptyInput)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.CorrelateSame(ctx, []int32{1}, []int32{1})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func BenchmarkCorrelateSame(b *testing.B) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(0))
	observed := make([]int32, 22050)
	reference := make([]int32, 22050)
	for i := 0; i < 1000; i++ {
		observed[rng.Intn(len(observed))] = 1
		reference[rng.Intn(len(reference))] = 1
	}
	c := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := c.CorrelateSame(ctx, observed, reference)
		if err != nil {
			b.Fatal(err)
		}
	}
}
