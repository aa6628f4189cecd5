package config

import "MarketPress/internal/model"

// Default watch lists for the tape and heatmap. Symbols use Stooq notation
// (indices prefixed with ^, US equities suffixed .us).
var defaultTapeWatch = []model.WatchItem{
	{Symbol: "^spx", DisplayName: "S&P 500"},
	{Symbol: "^ndq", DisplayName: "Nasdaq"},
	{Symbol: "^dji", DisplayName: "Dow Jones"},
	{Symbol: "eurusd", DisplayName: "EUR/USD"},
	{Symbol: "usdjpy", DisplayName: "USD/JPY"},
	{Symbol: "xauusd", DisplayName: "Gold"},
	{Symbol: "cl.f", DisplayName: "Crude Oil"},
	{Symbol: "btcusd", DisplayName: "Bitcoin"},
	{Symbol: "10usy.b", DisplayName: "US 10Y Yield"},
}

var defaultHeatmapWatch = []model.WatchItem{
	{Symbol: "aapl.us", DisplayName: "Apple", Group: "tech"},
	{Symbol: "msft.us", DisplayName: "Microsoft", Group: "tech"},
	{Symbol: "googl.us", DisplayName: "Alphabet", Group: "tech"},
	{Symbol: "amzn.us", DisplayName: "Amazon", Group: "consumer"},
	{Symbol: "nvda.us", DisplayName: "NVIDIA", Group: "tech"},
	{Symbol: "meta.us", DisplayName: "Meta", Group: "tech"},
	{Symbol: "tsla.us", DisplayName: "Tesla", Group: "consumer"},
	{Symbol: "brk-b.us", DisplayName: "Berkshire", Group: "financials"},
	{Symbol: "jpm.us", DisplayName: "JPMorgan", Group: "financials"},
	{Symbol: "v.us", DisplayName: "Visa", Group: "financials"},
	{Symbol: "unh.us", DisplayName: "UnitedHealth", Group: "healthcare"},
	{Symbol: "jnj.us", DisplayName: "J&J", Group: "healthcare"},
	{Symbol: "xom.us", DisplayName: "Exxon", Group: "energy"},
	{Symbol: "cvx.us", DisplayName: "Chevron", Group: "energy"},
	{Symbol: "wmt.us", DisplayName: "Walmart", Group: "consumer"},
	{Symbol: "pg.us", DisplayName: "P&G", Group: "consumer"},
}

// defaultSeries are the FRED indicators the commentary pages chart.
var defaultSeries = []model.SeriesSpec{
	{ID: "CPIAUCSL", File: "cpi"},
	{ID: "UNRATE", File: "unemployment"},
	{ID: "FEDFUNDS", File: "fed-funds"},
	{ID: "GS10", File: "treasury-10y"},
	{ID: "MORTGAGE30US", File: "mortgage-30y"},
	{ID: "MSPUS", File: "median-home-price"},
	{ID: "MEHOINUSA672N", File: "median-household-income"},
}
