package concurrent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	wp.Start(context.Background(), func(ctx context.Context, job int) int {
		return job * job
	})
	for i := 1; i <= 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	sum := 0
	for res := range wp.CollectResults() {
		sum += res
	}
	assert.Equal(t, 338350, sum)
}

func TestMapOrdered(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		jobs := make([]int, 1000)
		for i := range jobs {
			jobs[i] = i
		}
		res, err := MapOrdered(context.Background(), 8, jobs, func(ctx context.Context, job int) string {
			return string(rune('a' + job%26))
		})
		require.NoError(t, err)
		require.Len(t, res, len(jobs))
		for i := range jobs {
			assert.Equal(t, string(rune('a'+i%26)), res[i])
		}
	})

	t.Run("empty", func(t *testing.T) {
		res, err := MapOrdered(context.Background(), 4, []int{}, func(ctx context.Context, job int) int { return job })
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := MapOrdered(ctx, 2, []int{1, 2, 3}, func(ctx context.Context, job int) int { return job })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
