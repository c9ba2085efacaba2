package domain

// LineItem is a single cart line. The ID is assigned by the backend when
// the item is persisted remotely; purely local items carry an empty ID.
// Quantity is fixed at add time and not updatable in place.
type LineItem struct {
	ID          string `json:"id,omitempty"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`
}

// RemoteEntry is a line item persisted in the backend cart collection,
// keyed by the owning account.
type RemoteEntry struct {
	LineItem
	OwnerID string `json:"user_id"`
}

// Snapshot is the ordered cart state distributed to UI consumers through
// the broadcaster. Insertion order is display order only.
type Snapshot []LineItem

// ItemCount returns the total number of units across all lines.
func (s Snapshot) ItemCount() int {
	var count int
	for _, item := range s {
		count += item.Quantity
	}
	return count
}

// TotalAmount returns the total price of the snapshot in cents.
func (s Snapshot) TotalAmount() int64 {
	var total int64
	for _, item := range s {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// SnapshotOf builds a snapshot from remote entries, preserving order.
func SnapshotOf(entries []RemoteEntry) Snapshot {
	snap := make(Snapshot, len(entries))
	for i, e := range entries {
		snap[i] = e.LineItem
	}
	return snap
}
