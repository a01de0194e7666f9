package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-voice/internal/connections/rabbitmq"
	"pos-voice/internal/domain"
	"pos-voice/internal/microservices/order/repository"
)

type fakeRepo struct {
	mu         sync.Mutex
	count      int
	staleCount bool
	saved      []domain.Order
	active     []domain.Order
	oldStatus  domain.OrderStatus
	updateErr  error
	addErr     error
	updated    map[string]domain.OrderStatus
	listedAll  bool
}

// AddOrder enforces order_number uniqueness the way the orders table does.
func (f *fakeRepo) AddOrder(_ context.Context, o domain.Order, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return 0, f.addErr
	}
	for _, prev := range f.saved {
		if prev.OrderNumber == o.OrderNumber {
			return 0, fmt.Errorf("%w: %s", repository.ErrDuplicateOrderNumber, o.OrderNumber)
		}
	}
	f.saved = append(f.saved, o)
	if !f.staleCount {
		f.count++
	}
	return int64(len(f.saved)), nil
}

func (f *fakeRepo) CountOrdersOn(context.Context, time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, nil
}

func (f *fakeRepo) ListOrders(_ context.Context, includeCompleted bool) ([]domain.Order, error) {
	f.listedAll = includeCompleted
	return f.active, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, n string, st domain.OrderStatus, _ string) (domain.OrderStatus, error) {
	if f.updateErr != nil {
		return "", f.updateErr
	}
	if f.updated == nil {
		f.updated = map[string]domain.OrderStatus{}
	}
	f.updated[n] = st
	return f.oldStatus, nil
}

type published struct {
	exchange, key, correlationID string
	body                         []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, exchange, key, correlationID string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{exchange, key, correlationID, body})
	return f.err
}

func newTestService(repo *fakeRepo, pub Publisher) *OrderService {
	s := NewOrderService(repo, pub, nil)
	s.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return s
}

func validRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		CustomerName: " John Smith ",
		Items: []domain.CreateOrderItem{
			{ProductID: 1, Name: "Pepperoni Pizza", Quantity: 2, Price: 12},
			{ProductID: 3, Name: "Cola", Quantity: 1, Price: 2.5},
		},
	}
}

func TestAddOrderSavesAndPublishes(t *testing.T) {
	repo := &fakeRepo{count: 4}
	pub := &fakePublisher{}
	s := newTestService(repo, pub)

	resp, err := s.AddOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "ORD_20261017_005", resp.OrderNumber)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.InDelta(t, 26.5, resp.TotalAmount, 1e-9)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "John Smith", repo.saved[0].CustomerName)
	assert.Len(t, repo.saved[0].Items, 2)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, rabbitmq.OrdersExchange, pub.msgs[0].exchange)
	assert.Equal(t, "orders.pending", pub.msgs[0].key)
	assert.Equal(t, resp.OrderNumber, pub.msgs[0].correlationID)

	var msg domain.OrderMessage
	require.NoError(t, json.Unmarshal(pub.msgs[0].body, &msg))
	assert.Equal(t, resp.OrderNumber, msg.OrderNumber)
	assert.Len(t, msg.Items, 2)
}

func TestAddOrderKeepsRequestedStatus(t *testing.T) {
	s := newTestService(&fakeRepo{}, nil)
	req := validRequest()
	req.Status = "preparing"

	resp, err := s.AddOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, resp.Status)
}

func TestAddOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateOrderRequest)
	}{
		{"no customer", func(r *domain.CreateOrderRequest) { r.CustomerName = "  " }},
		{"no items", func(r *domain.CreateOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *domain.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"free item", func(r *domain.CreateOrderRequest) { r.Items[1].Price = 0 }},
		{"unknown status", func(r *domain.CreateOrderRequest) { r.Status = "BANANA" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			s := newTestService(repo, nil)
			req := validRequest()
			tc.mutate(&req)

			_, err := s.AddOrder(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, repo.saved)
		})
	}
}

func TestAddOrderPublishFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo, &fakePublisher{err: rabbitmq.ErrNack})

	resp, err := s.AddOrder(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORD_20261017_001", resp.OrderNumber)
	assert.Len(t, repo.saved, 1)
}

func TestAddOrderRepositoryError(t *testing.T) {
	s := newTestService(&fakeRepo{addErr: errors.New("connection reset")}, nil)
	_, err := s.AddOrder(context.Background(), validRequest())
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestAddOrderSkipsTakenNumbers(t *testing.T) {
	// the count never moves, as when another insert has not committed yet
	repo := &fakeRepo{count: 2, staleCount: true}
	s := newTestService(repo, nil)

	first, err := s.AddOrder(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := s.AddOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "ORD_20261017_003", first.OrderNumber)
	assert.Equal(t, "ORD_20261017_004", second.OrderNumber)
	assert.Len(t, repo.saved, 2)
}

func TestAddOrderConcurrentSubmissionsAllStored(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo, nil)

	const n = 4
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddOrder(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	seen := map[string]bool{}
	for _, o := range repo.saved {
		seen[o.OrderNumber] = true
	}
	assert.Len(t, seen, n)
}

func TestAddOrderGivesUpOnPersistentCollision(t *testing.T) {
	repo := &fakeRepo{addErr: fmt.Errorf("%w: ORD_X", repository.ErrDuplicateOrderNumber)}
	s := newTestService(repo, nil)

	_, err := s.AddOrder(context.Background(), validRequest())
	assert.ErrorIs(t, err, repository.ErrDuplicateOrderNumber)
}

func TestListAllIncludesCompleted(t *testing.T) {
	repo := &fakeRepo{active: []domain.Order{{OrderNumber: "ORD_1", Status: domain.StatusCompleted}}}
	s := newTestService(repo, nil)

	orders, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.True(t, repo.listedAll)

	_, err = s.ListActive(context.Background())
	require.NoError(t, err)
	assert.False(t, repo.listedAll)
}

func TestListActiveNeverNil(t *testing.T) {
	s := newTestService(&fakeRepo{}, nil)
	orders, err := s.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestUpdateStatusPublishesChange(t *testing.T) {
	repo := &fakeRepo{oldStatus: domain.StatusPending}
	pub := &fakePublisher{}
	s := newTestService(repo, pub)

	change, err := s.UpdateStatus(context.Background(), "ORD_20261017_001", "ready")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, change.OldStatus)
	assert.Equal(t, domain.StatusReady, change.NewStatus)
	assert.Equal(t, domain.StatusReady, repo.updated["ORD_20261017_001"])
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, rabbitmq.NotificationsExchange, pub.msgs[0].exchange)
}

func TestUpdateStatusErrors(t *testing.T) {
	s := newTestService(&fakeRepo{}, nil)
	_, err := s.UpdateStatus(context.Background(), "ORD_1", "banana")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdateStatus(context.Background(), "", "ready")
	assert.ErrorIs(t, err, ErrValidation)

	s = newTestService(&fakeRepo{updateErr: repository.ErrNotFound}, nil)
	_, err = s.UpdateStatus(context.Background(), "ORD_404", "ready")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
