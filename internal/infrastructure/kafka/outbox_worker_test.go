package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// memOutboxRepo — in-memory реализация outbox-таблицы со статусами и
// временем взятия в обработку.
type memOutboxRepo struct {
	events  []*usecase.OutboxEvent
	started map[int64]time.Time
	now     func() time.Time
}

func newMemOutboxRepo(events ...*usecase.OutboxEvent) *memOutboxRepo {
	return &memOutboxRepo{
		events:  events,
		started: make(map[int64]time.Time),
		now:     time.Now,
	}
}

func (m *memOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	var batch []*usecase.OutboxEvent
	for _, event := range m.events {
		if event.Status != usecase.Pending {
			continue
		}
		event.Status = usecase.Processing
		m.started[event.ID] = m.now()
		batch = append(batch, event)
		if len(batch) == limit {
			break
		}
	}
	return batch, nil
}

func (m *memOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, event := range m.events {
		if event.ID == id && event.Status == usecase.Processing {
			event.Status = usecase.Processed
		}
	}
	return nil
}

func (m *memOutboxRepo) RequeueStale(_ context.Context, olderThan time.Duration) (int64, error) {
	var requeued int64
	cutoff := m.now().Add(-olderThan)
	for _, event := range m.events {
		if event.Status == usecase.Processing && m.started[event.ID].Before(cutoff) {
			event.Status = usecase.Pending
			delete(m.started, event.ID)
			requeued++
		}
	}
	return requeued, nil
}

// flakyProducer отказывает первым failures публикациям, дальше работает.
type flakyProducer struct {
	failures int
	attempts int
	sent     []*usecase.WriteRawMessageReq
}

func (p *flakyProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	p.attempts++
	if p.attempts <= p.failures {
		return errors.New("dial tcp: connection refused")
	}
	p.sent = append(p.sent, req)
	return nil
}

func pendingEvent(id int64, orderID string) *usecase.OutboxEvent {
	event := usecase.NewOutboxEvent("event-"+orderID, usecase.EventOrderCreated, orderID, []byte(`{}`))
	event.ID = id
	return event
}

func TestOutboxWorker_RequeuesFailedPublish(t *testing.T) {
	ctx := context.Background()
	repo := newMemOutboxRepo(pendingEvent(1, "1756380000000"))
	producer := &flakyProducer{failures: 1}
	worker := NewOutboxWorker(repo, logger.NewSlogLogger(), producer, "")

	// Первая попытка: брокер недоступен, событие повисает в processing
	hasMore, err := worker.processBatch(ctx)
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, usecase.Processing, repo.events[0].Status)
	assert.Equal(t, 1, producer.attempts)

	// Без возврата в pending событие больше никому не достается
	hasMore, err = worker.processBatch(ctx)
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Equal(t, 1, producer.attempts)

	// Фоновый возврат: событие отвисло дольше staleAfter
	repo.now = func() time.Time { return time.Now().Add(staleAfter + time.Second) }
	assert.Equal(t, int64(1), worker.requeueStale(ctx))
	assert.Equal(t, usecase.Pending, repo.events[0].Status)

	// Повторная публикация доходит до брокера и помечает событие
	hasMore, err = worker.processBatch(ctx)
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, usecase.Processed, repo.events[0].Status)
	require.Len(t, producer.sent, 1)
	assert.Equal(t, "1756380000000", producer.sent[0].OrderID)
}

func TestOutboxWorker_FreshProcessingIsNotRequeued(t *testing.T) {
	ctx := context.Background()
	repo := newMemOutboxRepo(pendingEvent(1, "100"))
	producer := &flakyProducer{failures: 1}
	worker := NewOutboxWorker(repo, logger.NewSlogLogger(), producer, "")

	_, err := worker.processBatch(ctx)
	require.NoError(t, err)
	require.Equal(t, usecase.Processing, repo.events[0].Status)

	// Событие взято в обработку только что — другой воркер еще может
	// довести его до конца
	assert.Equal(t, int64(0), worker.requeueStale(ctx))
	assert.Equal(t, usecase.Processing, repo.events[0].Status)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("read: i/o timeout")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}
