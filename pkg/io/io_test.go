package io

import (
	"github.com/shopspring/decimal"

	"github.com/geniass/pricebot/pkg/scraper"
)

func strPtr(s string) *string { return &s }

func testRecords() []scraper.Record {
	return []scraper.Record{
		{
			Name:     "Sony WH-1000XM5",
			Price:    decimal.RequireFromString("1299.00"),
			Currency: scraper.Currency,
			Brand:    "Sony",
			Retailer: "MediaExpert",
			Link:     strPtr("/p/1"),
		},
		{
			Name:     "Sony WF-1000XM4 | czarne",
			Price:    decimal.RequireFromString("1234.5"),
			Currency: scraper.Currency,
			Brand:    "Sony",
			Retailer: "Euro.com.pl",
		},
	}
}
