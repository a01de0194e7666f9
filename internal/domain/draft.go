package domain

// DraftItem is one line of an order that has not been submitted yet.
type DraftItem struct {
	Product  Product
	Quantity int
}

// Draft is the in-memory order being assembled at a terminal.
// It is not safe for concurrent use; the owner serializes access.
type Draft struct {
	Items        []DraftItem
	CustomerName string
	Status       OrderStatus
}

// Upsert replaces the quantity of the line holding p, or appends a new line.
// Quantities below 1 are clamped to 1.
func (d *Draft) Upsert(p Product, qty int) {
	qty = ClampQuantity(qty)
	for i := range d.Items {
		if d.Items[i].Product.ID == p.ID {
			d.Items[i].Quantity = qty
			return
		}
	}
	d.Items = append(d.Items, DraftItem{Product: p, Quantity: qty})
}

// Remove drops the line for productID. It reports whether a line was removed.
func (d *Draft) Remove(productID int64) bool {
	for i := range d.Items {
		if d.Items[i].Product.ID == productID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Draft) SetCustomer(name string) { d.CustomerName = name }

func (d *Draft) SetStatus(st OrderStatus) { d.Status = st }

func (d *Draft) Reset() { *d = Draft{} }

func (d *Draft) Empty() bool { return len(d.Items) == 0 }

// Snapshot returns a copy whose Items slice does not alias the draft.
func (d *Draft) Snapshot() Draft {
	cp := *d
	cp.Items = append([]DraftItem(nil), d.Items...)
	return cp
}

// Total is the sum of quantity times price over all lines.
func (d *Draft) Total() float64 {
	var total float64
	for _, it := range d.Items {
		total += float64(it.Quantity) * it.Product.Price
	}
	return total
}

// ToRequest converts the draft into the payload accepted by the order service.
func (d *Draft) ToRequest() CreateOrderRequest {
	req := CreateOrderRequest{
		CustomerName: d.CustomerName,
		Status:       d.Status,
		Items:        make([]CreateOrderItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		req.Items = append(req.Items, CreateOrderItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}
	return req
}

func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
