package raster

import (
	"testing"

	"microraster/internal/mathutil"

	"github.com/stretchr/testify/assert"
)

func TestQueueTryPush(t *testing.T) {
	q := NewQueue(2)
	assert.Equal(t, 2, q.Cap())

	assert.True(t, q.TryPush(Command{Atlas: 1}))
	assert.False(t, q.Full())
	assert.True(t, q.TryPush(Command{Atlas: 2, Dst: mathutil.R(1, 1, 1, 1)}))
	assert.True(t, q.Full())
	assert.False(t, q.TryPush(Command{Atlas: 3}))

	cmds := q.Commands()
	assert.Len(t, cmds, 2)
	assert.Equal(t, 1, cmds[0].Atlas)
	assert.Equal(t, 2, cmds[1].Atlas)

	q.Reset()
	assert.Zero(t, q.Len())
	assert.Equal(t, 2, q.Cap())
	assert.True(t, q.TryPush(Command{Atlas: 4}))
}

func TestQueueDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultQueueCapacity, NewQueue(0).Cap())
	assert.Equal(t, DefaultQueueCapacity, NewQueue(-3).Cap())
}
