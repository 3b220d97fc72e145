package scraper

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

const mediaExpertBaseURL = "https://www.mediaexpert.pl"

// MediaExpertLayout splits the price into a whole and a fractional element;
// the link sits on the anchor wrapping the product name.
var MediaExpertLayout = Layout{
	Item: "div.offer-box",
	Fields: []Field{
		{Name: fieldName, Selector: ".offer-box__name", Required: true},
		{Name: fieldPrice, Selector: ".whole", Required: true},
		{Name: fieldFraction, Selector: ".fraction", Default: "00"},
		{Name: fieldLink, Selector: ".offer-box__name", Parent: true, Attr: "href"},
	},
}

func NewMediaExpertAdapter(t Transport, baseURL string, headers http.Header) *SearchAdapter {
	if baseURL == "" {
		baseURL = mediaExpertBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &SearchAdapter{
		retailer:  MediaExpert,
		transport: t,
		headers:   headers,
		searchURL: func(brand, keyword string) string {
			return baseURL + "/search?query%5Bquerystring%5D=" + brand + "+" + keyword
		},
		layout: MediaExpertLayout,
		price: func(v Values) (decimal.Decimal, error) {
			return ParseSplitPrice(v[fieldPrice], v[fieldFraction])
		},
	}
}
