package scraper

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAdapter struct {
	retailer Retailer
	fetch    func(brand, keyword string) (Batch, error)
	calls    []string
}

func (f *fakeAdapter) Retailer() Retailer { return f.retailer }

func (f *fakeAdapter) Fetch(brand, keyword string) (Batch, error) {
	f.calls = append(f.calls, brand+"/"+keyword)
	return f.fetch(brand, keyword)
}

func namedRecords(retailer Retailer, brand string, names ...string) []Record {
	var rs []Record
	for _, n := range names {
		rs = append(rs, Record{
			Name:     n,
			Price:    decimal.NewFromInt(1),
			Currency: Currency,
			Brand:    brand,
			Retailer: retailer.DisplayName(),
		})
	}
	return rs
}

func recordNames(rs []Record) []string {
	var names []string
	for _, r := range rs {
		names = append(names, r.Name)
	}
	return names
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestScraperPreservesConfiguredOrder(t *testing.T) {
	me := &fakeAdapter{retailer: MediaExpert, fetch: func(brand, keyword string) (Batch, error) {
		return Batch{Records: namedRecords(MediaExpert, brand, "me-"+keyword+"-1", "me-"+keyword+"-2")}, nil
	}}
	eu := &fakeAdapter{retailer: Eurocom, fetch: func(brand, keyword string) (Batch, error) {
		return Batch{Records: namedRecords(Eurocom, brand, "eu-"+keyword)}, nil
	}}

	s := NewScraper([]Adapter{me, eu}, nil)
	res := s.Run([]Triple{
		{Brand: "Sony", Keyword: "a", RetailerID: "eurocom"},
		{Brand: "Sony", Keyword: "a", RetailerID: "mediaexpert"},
		{Brand: "Sony", Keyword: "b", RetailerID: "mediaexpert"},
		{Brand: "Bose", Keyword: "c", RetailerID: "eurocom"},
	})

	assert.Equal(t, []string{"eu-a", "me-a-1", "me-a-2", "me-b-1", "me-b-2", "eu-c"}, recordNames(res.Records))
	assert.Equal(t, []string{"Sony/a", "Sony/b"}, me.calls)
	assert.Equal(t, []string{"Sony/a", "Bose/c"}, eu.calls)
	require.Len(t, res.Outcomes, 4)
	for _, o := range res.Outcomes {
		assert.Equal(t, StatusOK, o.Status)
	}
}

func TestScraperIsolatesFailures(t *testing.T) {
	me := &fakeAdapter{retailer: MediaExpert, fetch: func(brand, keyword string) (Batch, error) {
		if keyword == "broken" {
			return Batch{}, errors.New("connection reset")
		}
		return Batch{Records: namedRecords(MediaExpert, brand, keyword)}, nil
	}}
	logger, logs := observedLogger()

	res := NewScraper([]Adapter{me}, logger).Run([]Triple{
		{Brand: "Sony", Keyword: "first", RetailerID: "mediaexpert"},
		{Brand: "Sony", Keyword: "broken", RetailerID: "mediaexpert"},
		{Brand: "Sony", Keyword: "last", RetailerID: "mediaexpert"},
	})

	assert.Equal(t, []string{"first", "last"}, recordNames(res.Records))
	assert.Equal(t, 1, res.Failed())
	assert.Equal(t, StatusFailed, res.Outcomes[1].Status)
	assert.EqualError(t, res.Outcomes[1].Err, "connection reset")

	failures := logs.FilterMessage("fetch failed").All()
	require.Len(t, failures, 1)
	fields := failures[0].ContextMap()
	assert.Equal(t, "broken", fields["keyword"])
	assert.Equal(t, "mediaexpert", fields["retailer"])
}

func TestScraperRecoversAdapterPanic(t *testing.T) {
	bad := &fakeAdapter{retailer: Eurocom, fetch: func(brand, keyword string) (Batch, error) {
		panic("nil selection")
	}}
	good := &fakeAdapter{retailer: MediaExpert, fetch: func(brand, keyword string) (Batch, error) {
		return Batch{Records: namedRecords(MediaExpert, brand, "ok")}, nil
	}}

	res := NewScraper([]Adapter{bad, good}, nil).Run([]Triple{
		{Brand: "Sony", Keyword: "x", RetailerID: "eurocom"},
		{Brand: "Sony", Keyword: "x", RetailerID: "mediaexpert"},
	})

	assert.Equal(t, []string{"ok"}, recordNames(res.Records))
	assert.Equal(t, StatusFailed, res.Outcomes[0].Status)
	assert.Contains(t, res.Outcomes[0].Err.Error(), "nil selection")
}

func TestScraperSkipsUnknownRetailers(t *testing.T) {
	me := &fakeAdapter{retailer: MediaExpert, fetch: func(brand, keyword string) (Batch, error) {
		return Batch{Records: namedRecords(MediaExpert, brand, "ok")}, nil
	}}
	logger, logs := observedLogger()

	res := NewScraper([]Adapter{me}, logger).Run([]Triple{
		{Brand: "Sony", Keyword: "x", RetailerID: "allegro"},
		// known retailer without a registered adapter
		{Brand: "Sony", Keyword: "x", RetailerID: "eurocom"},
		{Brand: "Sony", Keyword: "x", RetailerID: "mediaexpert"},
	})

	assert.Equal(t, []string{"ok"}, recordNames(res.Records))
	assert.Equal(t, StatusSkipped, res.Outcomes[0].Status)
	assert.Equal(t, StatusSkipped, res.Outcomes[1].Status)
	assert.Equal(t, 0, res.Failed())
	assert.Empty(t, logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestScraperCountsSkippedCandidates(t *testing.T) {
	me := &fakeAdapter{retailer: MediaExpert, fetch: func(brand, keyword string) (Batch, error) {
		return Batch{
			Records: namedRecords(MediaExpert, brand, "ok"),
			Skips:   []Skip{{Index: 1, Reason: SkipMissingField, Field: "name"}},
		}, nil
	}}
	logger, logs := observedLogger()

	res := NewScraper([]Adapter{me}, logger).Run([]Triple{{Brand: "Sony", Keyword: "x", RetailerID: "mediaexpert"}})

	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, 1, res.Outcomes[0].Records)
	assert.Equal(t, 1, res.Outcomes[0].Skipped)
	assert.Len(t, logs.FilterMessage("candidate skipped").All(), 1)
}

const sonyMediaExpertPage = `<!DOCTYPE html>
<html lang="pl">
	<body>
		<div class="offer-box">
			<a href="/p/1"><h2 class="offer-box__name">Sony WH-1000XM5</h2></a>
			<div class="main-price"><span class="whole">1299</span><span class="fraction">00</span></div>
		</div>
	</body>
</html>`

func TestScraperEndToEndMediaExpert(t *testing.T) {
	var gotURL string
	tr := TransportFunc(func(url string, headers http.Header) (*Response, error) {
		gotURL = url
		return &Response{StatusCode: http.StatusOK, Body: []byte(sonyMediaExpertPage)}, nil
	})

	res := NewScraper(NewAdapters(tr, AdapterOptions{}), nil).Run([]Triple{
		{Brand: "Sony", Keyword: "WH-1000XM5", RetailerID: "mediaexpert"},
	})

	assert.Equal(t, "https://www.mediaexpert.pl/search?query%5Bquerystring%5D=Sony+WH-1000XM5", gotURL)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "Sony WH-1000XM5", rec.Name)
	assert.True(t, decimal.RequireFromString("1299").Equal(rec.Price))
	assert.Equal(t, "PLN", rec.Currency)
	assert.Equal(t, "Sony", rec.Brand)
	assert.Equal(t, "MediaExpert", rec.Retailer)
	require.NotNil(t, rec.Link)
	assert.Equal(t, "/p/1", *rec.Link)
}

func TestScraperEndToEndTimeout(t *testing.T) {
	tr := TransportFunc(func(url string, headers http.Header) (*Response, error) {
		return nil, errors.New("Client.Timeout exceeded while awaiting headers")
	})
	logger, logs := observedLogger()

	res := NewScraper(NewAdapters(tr, AdapterOptions{}), logger).Run([]Triple{
		{Brand: "Sony", Keyword: "WH-1000XM5", RetailerID: "mediaexpert"},
	})

	assert.Empty(t, res.Records)
	failures := logs.FilterMessage("fetch failed").All()
	require.Len(t, failures, 1)
	fields := failures[0].ContextMap()
	assert.Equal(t, "Sony", fields["brand"])
	assert.Equal(t, "WH-1000XM5", fields["keyword"])
	assert.Equal(t, "mediaexpert", fields["retailer"])
	assert.Contains(t, fields["error"], "Timeout")
}
