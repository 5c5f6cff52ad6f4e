package model

import "time"

// SupplyEvent records one fulfillment pass that planted trees against the
// pending queue. Leftover is the supply the pass could not place; it can be
// claimed by a later pass in the same region until Claimed is set.
type SupplyEvent struct {
	ID        string    `json:"id"`
	Region    Region    `json:"region"`
	Quantity  int64     `json:"quantity"`
	Carried   Credit    `json:"carried_over"`
	Consumed  Credit    `json:"consumed_quantity"`
	Leftover  Credit    `json:"leftover"`
	Claimed   bool      `json:"claimed"`
	CreatedAt time.Time `json:"created_at"`
}

// GlobalPool aggregates tree credit across all accounts.
type GlobalPool struct {
	WillPlant Credit `json:"will_plant"`
	DidPlant  Credit `json:"did_plant"`
	Version   int64  `json:"version"`
}

// Outstanding is the credit pledged but not yet planted.
func (p GlobalPool) Outstanding() Credit {
	return p.WillPlant - p.DidPlant
}
