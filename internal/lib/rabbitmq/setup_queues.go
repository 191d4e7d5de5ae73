package rabbitmq

// Имена обменника, очереди и ключа маршрутизации событий регистрации.
const (
	ExchangeName         = "identity"
	RegisteredQueueName  = "identity.registered"
	RegisteredRoutingKey = "user.registered"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetIdentityQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RegisteredQueueName, RoutingKey: RegisteredRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
