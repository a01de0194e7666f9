package command

import "pos-voice/internal/domain"

type Kind string

const (
	KindAddItem         Kind = "add_item"
	KindRemoveItem      Kind = "remove_item"
	KindSetCustomerName Kind = "set_customer_name"
	KindSetOrderStatus  Kind = "set_order_status"
	KindFinalizeOrder   Kind = "finalize_order"
	KindUnrecognized    Kind = "unrecognized"
)

// Intent is the structured command derived from one utterance. The concrete
// types below are the only implementations.
type Intent interface {
	Kind() Kind
}

type AddItem struct {
	Quantity int    `json:"quantity"`
	Fragment string `json:"fragment"`
}

type RemoveItem struct {
	Fragment string `json:"fragment"`
}

type SetCustomerName struct {
	Name string `json:"name"`
}

// SetOrderStatus carries the upper-cased status word as heard; it may name a
// status the system does not know.
type SetOrderStatus struct {
	Status domain.OrderStatus `json:"status"`
}

type FinalizeOrder struct{}

type Unrecognized struct{}

func (AddItem) Kind() Kind         { return KindAddItem }
func (RemoveItem) Kind() Kind      { return KindRemoveItem }
func (SetCustomerName) Kind() Kind { return KindSetCustomerName }
func (SetOrderStatus) Kind() Kind  { return KindSetOrderStatus }
func (FinalizeOrder) Kind() Kind   { return KindFinalizeOrder }
func (Unrecognized) Kind() Kind    { return KindUnrecognized }

type Outcome string

const (
	Applied             Outcome = "applied"
	NoMatch             Outcome = "no_match"
	UnresolvedReference Outcome = "unresolved_reference"
	InvalidStatusWord   Outcome = "invalid_status_word"
)

// Snapshot is the read-only state an utterance is evaluated against.
type Snapshot struct {
	Catalog []domain.Product
	Items   []domain.DraftItem
}

// Callbacks are invoked by Interpret; at most one is called per utterance.
// A nil callback is skipped.
type Callbacks struct {
	OnAdd         func(p domain.Product, qty int)
	OnRemove      func(productID int64)
	OnSetCustomer func(name string)
	OnSetStatus   func(st domain.OrderStatus)
	OnFinalize    func()
}

// Result describes what an utterance resolved to. Product is set for
// resolved add/remove intents. Suggestion is the closest known name when a
// fragment matched nothing; it is informational only.
type Result struct {
	Intent     Intent
	Outcome    Outcome
	Product    *domain.Product
	Quantity   int
	Suggestion string
}
