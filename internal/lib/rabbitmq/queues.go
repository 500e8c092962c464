package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений о премиум-доступе.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.access_activated", RoutingKey: "access_activated"},
	}
}
