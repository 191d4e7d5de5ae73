package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIdentityQueues(t *testing.T) {
	queues := GetIdentityQueues()

	require.NotEmpty(t, queues, "queues list should not be empty")

	// Проверка очереди регистраций
	first := queues[0]
	assert.Equal(t, RegisteredQueueName, first.QueueName)
	assert.Equal(t, RegisteredRoutingKey, first.RoutingKey)

	// Проверка уникальности QueueName
	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
