package scraper

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the configured retailers price in.
const Currency = "PLN"

// Record is one normalized product listing.
type Record struct {
	Name     string
	Price    decimal.Decimal
	Currency string
	Brand    string
	Retailer string
	// Link is nil when the listing had no link.
	Link *string
}

type recordJSON struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Currency string      `json:"currency"`
	Brand    string      `json:"brand"`
	Retailer string      `json:"retailer"`
	Link     *string     `json:"link"`
}

// MarshalJSON writes the price as a bare number, keeping one fractional
// digit for whole values (1299 -> 1299.0).
func (r Record) MarshalJSON() ([]byte, error) {
	price := r.Price.String()
	if !strings.Contains(price, ".") {
		price += ".0"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(recordJSON{
		Name:     r.Name,
		Price:    json.Number(price),
		Currency: r.Currency,
		Brand:    r.Brand,
		Retailer: r.Retailer,
		Link:     r.Link,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var rj recordJSON
	if err := json.Unmarshal(b, &rj); err != nil {
		return err
	}
	price, err := decimal.NewFromString(rj.Price.String())
	if err != nil {
		return err
	}
	*r = Record{
		Name:     rj.Name,
		Price:    price,
		Currency: rj.Currency,
		Brand:    rj.Brand,
		Retailer: rj.Retailer,
		Link:     rj.Link,
	}
	return nil
}

// Triple is one (brand, keyword, retailer id) entry of the search space.
type Triple struct {
	Brand      string
	Keyword    string
	RetailerID string
}

// Batch is what a single adapter fetch produced.
type Batch struct {
	Records []Record
	Skips   []Skip
}

type OutcomeStatus string

const (
	StatusOK      OutcomeStatus = "ok"
	StatusFailed  OutcomeStatus = "failed"
	StatusSkipped OutcomeStatus = "skipped"
)

// Outcome describes what happened to one triple during a run.
type Outcome struct {
	Triple
	Status  OutcomeStatus
	Records int
	Skipped int
	Err     error
}
