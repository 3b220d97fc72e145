package scraper

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Scraper runs every configured search once, in order, and collects what
// the adapters return.
type Scraper struct {
	adapters map[Retailer]Adapter
	logger   *zap.Logger
}

// Result accumulates the records and per-triple outcomes of a run.
type Result struct {
	Records  []Record
	Outcomes []Outcome
}

// Failed counts the triples whose fetch returned an error.
func (r Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			n++
		}
	}
	return n
}

// A nil logger disables logging.
func NewScraper(adapters []Adapter, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := Scraper{
		adapters: make(map[Retailer]Adapter, len(adapters)),
		logger:   logger,
	}
	for _, a := range adapters {
		s.adapters[a.Retailer()] = a
	}
	return &s
}

// Run visits every triple in order. Failing triples are logged and
// skipped; Run itself never fails.
func (s *Scraper) Run(space []Triple) Result {
	var acc Result
	for _, t := range space {
		acc = s.step(acc, t)
	}
	s.logger.Info("run finished",
		zap.Int("triples", len(space)),
		zap.Int("records", len(acc.Records)),
		zap.Int("failed", acc.Failed()),
	)
	return acc
}

func (s *Scraper) step(acc Result, t Triple) Result {
	o, records := s.visit(t)
	acc.Records = append(acc.Records, records...)
	acc.Outcomes = append(acc.Outcomes, o)
	return acc
}

func (s *Scraper) visit(t Triple) (Outcome, []Record) {
	log := s.logger.With(
		zap.String("brand", t.Brand),
		zap.String("keyword", t.Keyword),
		zap.String("retailer", t.RetailerID),
	)

	a, ok := s.resolve(t.RetailerID)
	if !ok {
		log.Debug("no adapter for retailer, skipping")
		return Outcome{Triple: t, Status: StatusSkipped}, nil
	}

	log.Info("searching")
	b, err := fetch(a, t)
	if err != nil {
		log.Warn("fetch failed", zap.Error(err))
		return Outcome{Triple: t, Status: StatusFailed, Err: err}, nil
	}

	for _, sk := range b.Skips {
		log.Debug("candidate skipped", zap.Stringer("skip", sk))
	}
	return Outcome{Triple: t, Status: StatusOK, Records: len(b.Records), Skipped: len(b.Skips)}, b.Records
}

func (s *Scraper) resolve(id string) (Adapter, bool) {
	r, ok := ParseRetailer(id)
	if !ok {
		return nil, false
	}
	a, ok := s.adapters[r]
	return a, ok
}

// fetch converts adapter panics into errors so one broken page cannot end
// the run.
func fetch(a Adapter, t Triple) (b Batch, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = Batch{}, eris.Errorf("%s: panic: %v", a.Retailer(), r)
		}
	}()
	return a.Fetch(t.Brand, t.Keyword)
}
