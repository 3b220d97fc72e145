package scraper

import (
	"errors"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rotisserie/eris"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Response is the raw result of a GET.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport issues a single GET request. Implementations must return an
// error for network failures and for non-2xx responses.
type Transport interface {
	Get(url string, headers http.Header) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(url string, headers http.Header) (*Response, error)

func (f TransportFunc) Get(url string, headers http.Header) (*Response, error) {
	return f(url, headers)
}

// CollyTransport fetches pages with a synchronous colly collector.
type CollyTransport struct {
	colly *colly.Collector
}

// NewCollyTransport creates a transport whose requests are bounded by timeout.
// A zero timeout means DefaultTimeout.
func NewCollyTransport(userAgent string, timeout time.Duration) *CollyTransport {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		// the same search can legitimately appear twice in one run
		colly.AllowURLRevisit(),
		// status codes are checked by Get so 2xx other than 200-202 pass too
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(timeout)
	// retailers use cookies for tracking only
	c.DisableCookies()

	return &CollyTransport{colly: c}
}

func (t *CollyTransport) Get(url string, headers http.Header) (*Response, error) {
	c := t.colly.Clone()

	var resp *Response
	c.OnRequest(func(r *colly.Request) {
		for k, vs := range headers {
			r.Headers.Del(k)
			for _, v := range vs {
				r.Headers.Add(k, v)
			}
		}
	})
	c.OnResponse(func(r *colly.Response) {
		resp = &Response{StatusCode: r.StatusCode, Body: r.Body}
	})

	if err := c.Visit(url); err != nil {
		return nil, eris.Wrapf(err, "get %s", url)
	}
	if resp == nil {
		return nil, eris.Errorf("get %s: no response", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Wrapf(ErrUnexpectedStatus, "get %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}
