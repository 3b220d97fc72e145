package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// SkipReason says why a candidate produced no record.
type SkipReason string

const (
	SkipMissingField SkipReason = "missing field"
	SkipInvalidPrice SkipReason = "invalid price"
)

// Skip describes one dropped candidate.
type Skip struct {
	// Index is the candidate's position in the page.
	Index  int
	Reason SkipReason
	Field  string
	Detail string
}

func (s Skip) String() string {
	if s.Detail == "" {
		return fmt.Sprintf("candidate %d: %s %q", s.Index, s.Reason, s.Field)
	}
	return fmt.Sprintf("candidate %d: %s %q: %s", s.Index, s.Reason, s.Field, s.Detail)
}

// Field describes how to read one value out of a candidate element.
type Field struct {
	Name     string
	Selector string
	// Attr reads an attribute instead of the trimmed text.
	Attr string
	// Parent reads from the parent of the matched element.
	Parent bool
	// Required fields that are absent or blank skip the candidate.
	Required bool
	// Default is used for optional fields that are absent or blank.
	Default string
}

// Layout is the declarative description of a retailer's search page.
type Layout struct {
	Item   string
	Fields []Field
}

// Values holds the extracted fields of one candidate. Optional fields with
// no value and no default are not present in the map.
type Values map[string]string

func (v Values) Lookup(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

// Candidate is either extracted values or the reason they could not be.
type Candidate struct {
	Index  int
	Values Values
	Skip   *Skip
}

// Extract parses body and applies the layout to every candidate element,
// preserving page order.
func (l Layout) Extract(body []byte) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "parse html")
	}

	var candidates []Candidate
	doc.Find(l.Item).Each(func(i int, s *goquery.Selection) {
		candidates = append(candidates, l.ExtractCandidate(i, s))
	})
	return candidates, nil
}

// ExtractCandidate applies the field rules to a single candidate element.
func (l Layout) ExtractCandidate(index int, s *goquery.Selection) Candidate {
	values := make(Values, len(l.Fields))
	for _, f := range l.Fields {
		v, ok := f.read(s)
		if !ok {
			if f.Required {
				return Candidate{Index: index, Skip: &Skip{Index: index, Reason: SkipMissingField, Field: f.Name}}
			}
			if f.Default == "" {
				continue
			}
			v = f.Default
		}
		values[f.Name] = v
	}
	return Candidate{Index: index, Values: values}
}

func (f Field) read(s *goquery.Selection) (string, bool) {
	sel := s.Find(f.Selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	if f.Parent {
		sel = sel.Parent()
		if sel.Length() == 0 {
			return "", false
		}
	}

	var v string
	if f.Attr != "" {
		attr, ok := sel.Attr(f.Attr)
		if !ok {
			return "", false
		}
		v = attr
	} else {
		v = sel.Text()
	}

	v = strings.TrimSpace(v)
	return v, v != ""
}
