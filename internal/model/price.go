package model

import "time"

// PricePoint is one symbol's close price and traded volume for one calendar
// date. (Symbol, Date) is the natural key; Date carries no time component.
type PricePoint struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
