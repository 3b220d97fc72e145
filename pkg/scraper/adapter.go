package scraper

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultUserAgent identifies the bot to retailers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; PriceBot/1.0)"

// DefaultTimeout bounds a single retailer request.
const DefaultTimeout = 15 * time.Second

// Retailer enumerates the supported shops.
type Retailer int

const (
	MediaExpert Retailer = iota + 1
	Eurocom
)

// Retailers lists every known retailer in a stable order.
var Retailers = []Retailer{MediaExpert, Eurocom}

// ParseRetailer maps a configuration identifier to a Retailer.
// The second result is false for identifiers no adapter exists for.
func ParseRetailer(id string) (Retailer, bool) {
	switch id {
	case "mediaexpert":
		return MediaExpert, true
	case "eurocom":
		return Eurocom, true
	default:
		return 0, false
	}
}

// ID is the configuration identifier.
func (r Retailer) ID() string {
	switch r {
	case MediaExpert:
		return "mediaexpert"
	case Eurocom:
		return "eurocom"
	default:
		return fmt.Sprintf("retailer(%d)", int(r))
	}
}

// DisplayName is the name written into records.
func (r Retailer) DisplayName() string {
	switch r {
	case MediaExpert:
		return "MediaExpert"
	case Eurocom:
		return "Euro.com.pl"
	default:
		return r.ID()
	}
}

func (r Retailer) String() string {
	return r.ID()
}

// Adapter fetches and normalizes search results from one retailer.
type Adapter interface {
	Retailer() Retailer
	// Fetch returns the listings found for brand and keyword. An error means
	// the search itself failed; candidates that could not be parsed are
	// reported in Batch.Skips instead.
	Fetch(brand, keyword string) (Batch, error)
}

// AdapterOptions configures the built-in adapters.
type AdapterOptions struct {
	UserAgent string
	// BaseURLs overrides the default site root per retailer.
	BaseURLs map[Retailer]string
}

// NewAdapters builds one adapter per known retailer on top of t.
func NewAdapters(t Transport, opts AdapterOptions) []Adapter {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	headers := http.Header{}
	headers.Set("User-Agent", opts.UserAgent)

	adapters := make([]Adapter, 0, len(Retailers))
	for _, r := range Retailers {
		base := opts.BaseURLs[r]
		switch r {
		case MediaExpert:
			adapters = append(adapters, NewMediaExpertAdapter(t, base, headers))
		case Eurocom:
			adapters = append(adapters, NewEurocomAdapter(t, base, headers))
		}
	}
	return adapters
}
