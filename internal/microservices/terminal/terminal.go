package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/domain"
	"pos-voice/internal/voice/command"
)

const submitTimeout = 10 * time.Second

// Submitter accepts finished orders; the order service satisfies it.
type Submitter interface {
	AddOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error)
}

// Catalog supplies the products of one category.
type Catalog interface {
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
}

// Terminal owns one order draft and the product list it is edited against.
// Utterances are applied one at a time; submissions run in the background.
type Terminal struct {
	name    string
	id      string
	interp  *command.Interpreter
	orders  Submitter
	catalog Catalog
	lg      *logger.Logger

	mu         sync.Mutex
	draft      domain.Draft
	products   []domain.Product
	categoryID int64
	// closed when the most recent submission has finished
	lastSubmit chan struct{}

	inflight sync.WaitGroup
}

func New(name string, orders Submitter, catalog Catalog, lg *logger.Logger) *Terminal {
	if lg == nil {
		lg = logger.New("terminal")
	}
	return &Terminal{
		name:    name,
		id:      uuid.NewString(),
		interp:  command.New(),
		orders:  orders,
		catalog: catalog,
		lg:      lg,
	}
}

func (t *Terminal) Name() string { return t.name }

// SelectCategory replaces the product list voice commands resolve against.
func (t *Terminal) SelectCategory(ctx context.Context, categoryID int64) error {
	products, err := t.catalog.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.products = products
	t.categoryID = categoryID
	t.mu.Unlock()

	t.lg.Info("category_selected", map[string]any{
		"terminal": t.name, "category_id": categoryID, "products": len(products),
	})
	return nil
}

// Draft returns a copy of the current draft.
func (t *Terminal) Draft() domain.Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft.Snapshot()
}

// HandleUtterance interprets one utterance against the current draft and
// catalog and applies its effect.
func (t *Terminal) HandleUtterance(utterance string) command.Result {
	t.mu.Lock()
	snap := command.Snapshot{Catalog: t.products, Items: t.draft.Items}
	res := t.interp.Interpret(utterance, snap, command.Callbacks{
		OnAdd:         func(p domain.Product, qty int) { t.draft.Upsert(p, qty) },
		OnRemove:      func(id int64) { t.draft.Remove(id) },
		OnSetCustomer: t.draft.SetCustomer,
		OnSetStatus:   t.draft.SetStatus,
		OnFinalize:    t.finalizeLocked,
	})
	t.mu.Unlock()

	t.logResult(utterance, res)
	return res
}

// Wait blocks until every submission started so far has finished.
func (t *Terminal) Wait() { t.inflight.Wait() }

// finalizeLocked hands the draft to the submitter and starts a new one. The
// caller holds t.mu. Submission is not awaited, but submissions from one
// terminal reach the submitter in finalize order.
func (t *Terminal) finalizeLocked() {
	if t.draft.Empty() {
		t.lg.Info("finalize_skipped", map[string]any{"terminal": t.name, "reason": "empty draft"})
		return
	}
	req := t.draft.ToRequest()
	t.draft.Reset()

	prev, done := t.lastSubmit, make(chan struct{})
	t.lastSubmit = done

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		t.submit(req)
	}()
}

func (t *Terminal) submit(req domain.CreateOrderRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	resp, err := t.orders.AddOrder(ctx, req)
	if err != nil {
		t.lg.Error("order_submit_failed", err, map[string]any{
			"terminal": t.name, "customer": req.CustomerName, "items": len(req.Items),
		})
		return
	}
	t.lg.Info("order_submitted", map[string]any{
		"terminal":     t.name,
		"order_number": resp.OrderNumber,
		"status":       resp.Status,
		"total":        resp.TotalAmount,
	})
}

func (t *Terminal) logResult(utterance string, res command.Result) {
	fields := map[string]any{
		"terminal":   t.name,
		"session_id": t.id,
		"utterance":  utterance,
		"intent":     res.Intent.Kind(),
		"outcome":    res.Outcome,
	}
	if res.Product != nil {
		fields["product"] = res.Product.Name
	}
	if res.Suggestion != "" {
		fields["suggestion"] = res.Suggestion
	}
	if res.Outcome == command.Applied {
		t.lg.Info("utterance_applied", fields)
		return
	}
	t.lg.Debug("utterance_ignored", fields)
}
