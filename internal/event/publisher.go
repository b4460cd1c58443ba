package event

// Publisher 事件发布接口，回调处理器通过它解耦 MQ 细节
type Publisher interface {
	Publish(routingKey string, msg any) error
}
