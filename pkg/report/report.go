// Package report renders a human readable overview of a scrape run.
package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/geniass/pricebot/pkg/scraper"
)

// RenderOutcomes writes one row per searched triple followed by totals.
func RenderOutcomes(w io.Writer, res scraper.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Brand", "Keyword", "Retailer", "Status", "Records", "Skipped", "Error"})

	for _, o := range res.Outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		t.AppendRow(table.Row{
			o.Brand,
			o.Keyword,
			o.RetailerID,
			string(o.Status),
			o.Records,
			o.Skipped,
			errText,
		})
	}

	t.AppendFooter(table.Row{"", "", "", "Total", len(res.Records), "", ""})
	t.Render()
}
