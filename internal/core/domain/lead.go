package domain

import "time"

const LeadStatusPending = "pending"

// Lead is a buyer's interest in a product of a store.
type Lead struct {
	ID        int64
	ProductID int64
	StoreID   int64
	Status    string
	CreatedAt time.Time
}
