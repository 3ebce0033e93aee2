package orderfile

import "time"

// OrderFile is the on-disk representation of one order. The whole document
// is always rewritten in one atomic replace, never patched in place.
type OrderFile struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	Artifacts       []string  `json:"artifacts"`
	CustomerEmail   string    `json:"customer_email,omitempty"`
	CustomerAddress string    `json:"customer_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
