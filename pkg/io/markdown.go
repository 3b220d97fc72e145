package io

import (
	"io"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/geniass/pricebot/pkg/scraper"
)

var markdownTemplate = template.Must(template.New("markdownTemplate").Funcs(template.FuncMap{
	"cell": markdownCell,
	"link": markdownLink,
}).Parse(
	`| Product | Brand | Price (PLN) | Retailer | Link |
|---------|-------|------------|----------|------|
{{ range .Products }}| {{ cell .Name }} | {{ cell .Brand }} | {{ .Price.StringFixed 2 }} | {{ cell .Retailer }} | {{ link . }} |
{{ end }}`,
))

// MarkdownWriter writes the tabular summary, replacing any previous file.
type MarkdownWriter struct {
	Path string
}

func (w MarkdownWriter) WriteSnapshot(s Snapshot) error {
	f, err := createFile(w.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := RenderMarkdown(f, s); err != nil {
		return eris.Wrapf(err, "render %s", w.Path)
	}
	return f.Close()
}

// RenderMarkdown writes the summary table for s to w.
func RenderMarkdown(w io.Writer, s Snapshot) error {
	return markdownTemplate.Execute(w, s)
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ")

func markdownCell(s string) string {
	return cellReplacer.Replace(s)
}

func markdownLink(r scraper.Record) string {
	if r.Link == nil || *r.Link == "" {
		return ""
	}
	return "[Link](" + markdownCell(*r.Link) + ")"
}
