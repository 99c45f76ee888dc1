package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicPublishOrder(t *testing.T) {
	var topic Topic[int]
	var got []string

	topic.Subscribe(func(v int) { got = append(got, "a") })
	topic.Subscribe(func(v int) { got = append(got, "b") })

	topic.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTopicUnsubscribe(t *testing.T) {
	var topic Topic[string]
	calls := 0

	sub := topic.Subscribe(func(string) { calls++ })
	require.Equal(t, 1, topic.Len())

	sub.Unsubscribe()
	sub.Unsubscribe()
	topic.Publish("x")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, topic.Len())
}

func TestTopicUnsubscribeDuringPublish(t *testing.T) {
	var topic Topic[int]
	var second int
	var sub Subscription

	sub = topic.Subscribe(func(int) { sub.Unsubscribe() })
	topic.Subscribe(func(v int) { second = v })

	topic.Publish(7)
	assert.Equal(t, 7, second)
	assert.Equal(t, 1, topic.Len())
}

func TestSubscriptionIDsAreDistinct(t *testing.T) {
	var topic Topic[int]
	a := topic.Subscribe(func(int) {})
	b := topic.Subscribe(func(int) {})
	assert.NotEqual(t, a.ID(), b.ID())
}
