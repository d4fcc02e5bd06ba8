package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	q := NewRingQueue[int](3)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, q.Enqueue(3))
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue(4), ErrQueueFull)

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, q.Enqueue(4))
	assert.Equal(t, []int{2, 3, 4}, q.Drain(nil))
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
}

func TestRingQueueEmpty(t *testing.T) {
	q := NewRingQueue[string](0)

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, q.Enqueue("only"))
	assert.True(t, q.IsFull())
}

func TestRingQueueDrainAppends(t *testing.T) {
	q := NewRingQueue[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Enqueue(i))
	}

	dst := q.Drain([]int{-1})

	assert.Equal(t, []int{-1, 0, 1, 2, 3}, dst)
}
