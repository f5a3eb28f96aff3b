package kafka

import (
	"context"
	"encoding/json"

	"github.com/otkirbek-shop/go-storefront/internal/cfg"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Consumer читает события заказов и передает их нотификатору Telegram.
// Consumer group дает at-least-once: повторное уведомление о заказе
// безопаснее потерянного.
type Consumer struct {
	reader   *kafka.Reader
	notifier usecase.Notifier
	logger   logger.Logger
}

func NewConsumer(cfg *cfg.KafkaCfg, notifier usecase.Notifier, logger logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{
		reader:   reader,
		notifier: notifier,
		logger:   logger,
	}
}

// Consume читает сообщения до отмены контекста. Ошибка обработки одного
// сообщения не останавливает чтение.
func (c *Consumer) Consume(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Warnf("Error reading message: %v", err)
				continue
			}

			if err := c.handleMessage(ctx, msg.Value); err != nil {
				c.logger.Warnf("Error handling message: %v", err)
			}
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, value []byte) error {
	var event usecase.OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	return c.notifier.NotifyOrder(ctx, &event)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
