package scraper

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

const eurocomBaseURL = "https://www.euro.com.pl"

// EurocomLayout reads a single "1 234,56" price element.
var EurocomLayout = Layout{
	Item: "div.product-wrapper",
	Fields: []Field{
		{Name: fieldName, Selector: "a.product-name", Required: true},
		{Name: fieldPrice, Selector: "span.product-price__value", Required: true},
		{Name: fieldLink, Selector: "a.product-name", Attr: "href"},
	},
}

func NewEurocomAdapter(t Transport, baseURL string, headers http.Header) *SearchAdapter {
	if baseURL == "" {
		baseURL = eurocomBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &SearchAdapter{
		retailer:  Eurocom,
		transport: t,
		headers:   headers,
		searchURL: func(brand, keyword string) string {
			return baseURL + "/search.xml?szukaj=" + brand + "+" + keyword
		},
		layout: EurocomLayout,
		price: func(v Values) (decimal.Decimal, error) {
			return ParseGroupedPrice(v[fieldPrice])
		},
	}
}
