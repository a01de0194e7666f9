package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var (
	pepperoni = Product{ID: 1, CategoryID: 1, Name: "Pepperoni Pizza", Price: 12}
	cola      = Product{ID: 3, CategoryID: 2, Name: "Cola", Price: 2.5}
)

func TestDraftUpsert(t *testing.T) {
	tests := []struct {
		name string
		ops  func(d *Draft)
		want []DraftItem
	}{
		{
			name: "append",
			ops:  func(d *Draft) { d.Upsert(pepperoni, 2); d.Upsert(cola, 1) },
			want: []DraftItem{{pepperoni, 2}, {cola, 1}},
		},
		{
			name: "replace keeps position",
			ops:  func(d *Draft) { d.Upsert(pepperoni, 2); d.Upsert(cola, 1); d.Upsert(pepperoni, 5) },
			want: []DraftItem{{pepperoni, 5}, {cola, 1}},
		},
		{
			name: "clamps below one",
			ops:  func(d *Draft) { d.Upsert(cola, 0) },
			want: []DraftItem{{cola, 1}},
		},
		{
			name: "remove",
			ops:  func(d *Draft) { d.Upsert(pepperoni, 1); d.Upsert(cola, 1); d.Remove(pepperoni.ID) },
			want: []DraftItem{{cola, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Draft
			tt.ops(&d)
			if diff := cmp.Diff(tt.want, d.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDraftRemoveMissing(t *testing.T) {
	var d Draft
	d.Upsert(cola, 1)
	assert.False(t, d.Remove(99))
	assert.Len(t, d.Items, 1)
}

func TestDraftSnapshotDoesNotAlias(t *testing.T) {
	var d Draft
	d.Upsert(cola, 1)
	snap := d.Snapshot()
	d.Upsert(cola, 4)
	assert.Equal(t, 1, snap.Items[0].Quantity)
}

func TestDraftToRequest(t *testing.T) {
	d := Draft{CustomerName: "Ada", Status: StatusReady}
	d.Upsert(pepperoni, 2)
	d.Upsert(cola, 1)

	want := CreateOrderRequest{
		CustomerName: "Ada",
		Status:       StatusReady,
		Items: []CreateOrderItem{
			{ProductID: 1, Name: "Pepperoni Pizza", Quantity: 2, Price: 12},
			{ProductID: 3, Name: "Cola", Quantity: 1, Price: 2.5},
		},
	}
	if diff := cmp.Diff(want, d.ToRequest()); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 26.5, d.Total(), 1e-9)

	d.Reset()
	assert.True(t, d.Empty())
	assert.Empty(t, d.CustomerName)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" ready ")
	assert.True(t, ok)
	assert.Equal(t, StatusReady, st)

	_, ok = ParseStatus("banana")
	assert.False(t, ok)
}
