package scraper

import (
	"net/http"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// PriceFunc turns a candidate's extracted values into a price.
type PriceFunc func(Values) (decimal.Decimal, error)

// SearchAdapter is an Adapter for retailers whose search page is plain HTML
// described by a Layout.
type SearchAdapter struct {
	retailer  Retailer
	transport Transport
	headers   http.Header
	searchURL func(brand, keyword string) string
	layout    Layout
	price     PriceFunc
}

func (a *SearchAdapter) Retailer() Retailer {
	return a.retailer
}

// SearchURL is the URL queried for brand and keyword.
func (a *SearchAdapter) SearchURL(brand, keyword string) string {
	return a.searchURL(brand, keyword)
}

func (a *SearchAdapter) Fetch(brand, keyword string) (Batch, error) {
	resp, err := a.transport.Get(a.searchURL(brand, keyword), a.headers)
	if err != nil {
		return Batch{}, eris.Wrapf(err, "%s: search", a.retailer)
	}
	return a.Parse(brand, resp.Body)
}

// Parse extracts records for brand from a search result page.
func (a *SearchAdapter) Parse(brand string, body []byte) (Batch, error) {
	candidates, err := a.layout.Extract(body)
	if err != nil {
		return Batch{}, eris.Wrapf(err, "%s: parse", a.retailer)
	}

	var b Batch
	for _, c := range candidates {
		rec, skip := a.record(brand, c)
		if skip != nil {
			b.Skips = append(b.Skips, *skip)
			continue
		}
		b.Records = append(b.Records, rec)
	}
	return b, nil
}

func (a *SearchAdapter) record(brand string, c Candidate) (Record, *Skip) {
	if c.Skip != nil {
		return Record{}, c.Skip
	}

	price, err := a.price(c.Values)
	if err != nil {
		return Record{}, &Skip{Index: c.Index, Reason: SkipInvalidPrice, Field: fieldPrice, Detail: err.Error()}
	}

	rec := Record{
		Name:     c.Values[fieldName],
		Price:    price,
		Currency: Currency,
		Brand:    brand,
		Retailer: a.retailer.DisplayName(),
	}
	if link, ok := c.Values.Lookup(fieldLink); ok {
		rec.Link = &link
	}
	return rec, nil
}

const (
	fieldName     = "name"
	fieldPrice    = "price"
	fieldFraction = "fraction"
	fieldLink     = "link"
)
