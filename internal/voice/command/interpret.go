package command

import (
	"strings"

	"pos-voice/internal/domain"
)

// Evaluate parses the utterance and resolves any product reference against
// snap. It has no side effects.
func (in *Interpreter) Evaluate(utterance string, snap Snapshot) Result {
	intent := in.Parse(utterance)
	res := Result{Intent: intent, Outcome: Applied}

	switch it := intent.(type) {
	case AddItem:
		p, ok := findProduct(snap.Catalog, it.Fragment)
		if !ok {
			res.Outcome = UnresolvedReference
			res.Suggestion = nearestName(it.Fragment, catalogNames(snap.Catalog))
			return res
		}
		res.Product = &p
		res.Quantity = domain.ClampQuantity(it.Quantity)
	case RemoveItem:
		item, ok := findDraftItem(snap.Items, it.Fragment)
		if !ok {
			res.Outcome = UnresolvedReference
			res.Suggestion = nearestName(it.Fragment, draftNames(snap.Items))
			return res
		}
		p := item.Product
		res.Product = &p
	case SetOrderStatus:
		if _, ok := domain.ParseStatus(string(it.Status)); !ok {
			res.Outcome = InvalidStatusWord
		}
	case Unrecognized:
		res.Outcome = NoMatch
	}
	return res
}

// Interpret evaluates the utterance and, when it resolved, invokes exactly
// one callback. Unmatched or unresolved utterances are absorbed silently; the
// returned Result says which case occurred.
func (in *Interpreter) Interpret(utterance string, snap Snapshot, cb Callbacks) Result {
	res := in.Evaluate(utterance, snap)
	if res.Outcome != Applied {
		return res
	}
	Dispatch(res, cb)
	return res
}

// Dispatch invokes the callback matching an applied result.
func Dispatch(res Result, cb Callbacks) {
	if res.Outcome != Applied {
		return
	}
	switch it := res.Intent.(type) {
	case AddItem:
		if cb.OnAdd != nil && res.Product != nil {
			cb.OnAdd(*res.Product, res.Quantity)
		}
	case RemoveItem:
		if cb.OnRemove != nil && res.Product != nil {
			cb.OnRemove(res.Product.ID)
		}
	case SetCustomerName:
		if cb.OnSetCustomer != nil {
			cb.OnSetCustomer(it.Name)
		}
	case SetOrderStatus:
		if cb.OnSetStatus != nil {
			cb.OnSetStatus(it.Status)
		}
	case FinalizeOrder:
		if cb.OnFinalize != nil {
			cb.OnFinalize()
		}
	}
}

// findProduct returns the first catalog entry whose name contains fragment,
// compared case-insensitively. Catalog order decides ties.
func findProduct(catalog []domain.Product, fragment string) (domain.Product, bool) {
	if fragment == "" {
		return domain.Product{}, false
	}
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), fragment) {
			return p, true
		}
	}
	return domain.Product{}, false
}

func findDraftItem(items []domain.DraftItem, fragment string) (domain.DraftItem, bool) {
	if fragment == "" {
		return domain.DraftItem{}, false
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Product.Name), fragment) {
			return it, true
		}
	}
	return domain.DraftItem{}, false
}

func catalogNames(catalog []domain.Product) []string {
	out := make([]string, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p.Name)
	}
	return out
}

func draftNames(items []domain.DraftItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Product.Name)
	}
	return out
}
