package command

import (
	"regexp"
	"strings"

	"pos-voice/internal/domain"
)

const (
	customerPrefix = "customer name "
	statusPrefix   = "set status to "
)

var (
	addRE      = regexp.MustCompile(`(?i)^add\s+(\d+|[[:alpha:]]+)\s+(.+)$`)
	removeRE   = regexp.MustCompile(`(?i)^remove\s+(.+)$`)
	finalizeRE = regexp.MustCompile(`(?i)^(?:finalize|submit)\b.*\border\b`)
)

// matcher recognizes one command shape. ok=false passes the utterance on to
// the next matcher.
type matcher func(utterance string) (Intent, bool)

// Interpreter turns utterances into intents. Matchers run in order and the
// first one that accepts the utterance wins.
type Interpreter struct {
	matchers []matcher
}

func New() *Interpreter {
	return &Interpreter{matchers: []matcher{
		matchAdd,
		matchRemove,
		matchCustomer,
		matchStatus,
		matchFinalize,
	}}
}

// Parse classifies an utterance without looking at any catalog or draft.
func (in *Interpreter) Parse(utterance string) Intent {
	u := strings.TrimSpace(utterance)
	if u == "" {
		return Unrecognized{}
	}
	for _, m := range in.matchers {
		if intent, ok := m(u); ok {
			return intent
		}
	}
	return Unrecognized{}
}

func matchAdd(u string) (Intent, bool) {
	m := addRE.FindStringSubmatch(u)
	if m == nil {
		return nil, false
	}
	return AddItem{
		Quantity: parseNumberToken(m[1]),
		Fragment: strings.ToLower(strings.TrimSpace(m[2])),
	}, true
}

func matchRemove(u string) (Intent, bool) {
	m := removeRE.FindStringSubmatch(u)
	if m == nil {
		return nil, false
	}
	return RemoveItem{Fragment: strings.ToLower(strings.TrimSpace(m[1]))}, true
}

// matchCustomer keeps the casing of the name as it was heard.
func matchCustomer(u string) (Intent, bool) {
	rest, ok := cutPrefixFold(u, customerPrefix)
	if !ok {
		return nil, false
	}
	name := strings.TrimSpace(rest)
	if name == "" {
		return nil, false
	}
	return SetCustomerName{Name: name}, true
}

func matchStatus(u string) (Intent, bool) {
	rest, ok := cutPrefixFold(u, statusPrefix)
	if !ok {
		return nil, false
	}
	word := strings.Join(strings.Fields(strings.ToUpper(rest)), "_")
	if word == "" {
		return nil, false
	}
	return SetOrderStatus{Status: domain.OrderStatus(word)}, true
}

func matchFinalize(u string) (Intent, bool) {
	if !finalizeRE.MatchString(u) {
		return nil, false
	}
	return FinalizeOrder{}, true
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
