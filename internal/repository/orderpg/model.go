package orderpg

import "time"

type OrderDB struct {
	ID              string
	Status          string
	Artifacts       []string
	CustomerEmail   *string
	CustomerAddress *string
	CreatedAt       time.Time
}
