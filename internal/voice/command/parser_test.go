package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-voice/internal/domain"
)

func TestParseTable(t *testing.T) {
	in := New()
	tests := []struct {
		in   string
		want Intent
	}{
		{in: "add 3 cola", want: AddItem{Quantity: 3, Fragment: "cola"}},
		{in: "add three cola", want: AddItem{Quantity: 3, Fragment: "cola"}},
		{in: "  add ten   garlic bread ", want: AddItem{Quantity: 10, Fragment: "garlic bread"}},
		{in: "add some fries", want: AddItem{Quantity: 1, Fragment: "fries"}},
		{in: "add 0 fries", want: AddItem{Quantity: 1, Fragment: "fries"}},
		{in: "ADD 2 Cheese Pizza", want: AddItem{Quantity: 2, Fragment: "cheese pizza"}},
		{in: "remove pizza", want: RemoveItem{Fragment: "pizza"}},
		{in: "customer name John Smith", want: SetCustomerName{Name: "John Smith"}},
		{in: "customer name   ada ", want: SetCustomerName{Name: "ada"}},
		{in: "set status to ready", want: SetOrderStatus{Status: domain.StatusReady}},
		{in: "set status to banana", want: SetOrderStatus{Status: "BANANA"}},
		{in: "finalize this order now", want: FinalizeOrder{}},
		{in: "submit the order", want: FinalizeOrder{}},
		{in: "finalize order", want: FinalizeOrder{}},
		{in: "order finalize", want: Unrecognized{}},
		{in: "submit the orders", want: Unrecognized{}},
		{in: "play music", want: Unrecognized{}},
		{in: "add cola", want: Unrecognized{}},
		{in: "customer name", want: Unrecognized{}},
		{in: "", want: Unrecognized{}},
	}
	for _, tc := range tests {
		got := in.Parse(tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
	}
}

func TestAddTakesPriorityOverFinalize(t *testing.T) {
	in := New()
	got := in.Parse("add 2 submit order special")
	assert.Equal(t, AddItem{Quantity: 2, Fragment: "submit order special"}, got)
}

func TestNumberWordsMatchDigits(t *testing.T) {
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	for i, w := range words {
		assert.Equal(t, i+1, parseNumberToken(w), w)
	}
	assert.Equal(t, 7, parseNumberToken("7"))
	assert.Equal(t, 1, parseNumberToken("eleven"))
	assert.Equal(t, 1, parseNumberToken("99999999999999999999999"))
}
