package domain

import "time"

// AssetPrice is an immutable snapshot of an asset's price at one moment.
// Low and high track the running window extremes, so they only widen as
// prices move.
type AssetPrice struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	NetPrice  float64   `json:"net_price"` // price after the 1% exchange fee
	Low       float64   `json:"low"`
	High      float64   `json:"high"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}
