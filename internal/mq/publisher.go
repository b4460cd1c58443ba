package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"mall-pay-api/internal/dal"
)

// Publisher order_events 交换机发布器
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish 发布事件到 order_events。MQ 未初始化时静默跳过，
// 事件投递失败不反灌业务结果，只记日志。
func (p *Publisher) Publish(routingKey string, msg any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = dal.RabbitCh.Publish(
		"order_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
