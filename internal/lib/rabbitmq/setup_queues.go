package rabbitmq

// RoutingKeyPurchaseCompleted - ключ события завершённой покупки.
const RoutingKeyPurchaseCompleted = "kupovina.zavrsena"

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ShopQueues возвращает очереди, которые объявляет API при старте.
func ShopQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "kursevi.kupovine", RoutingKey: RoutingKeyPurchaseCompleted},
	}
}
