// Package dashboard recomputes the whole dashboard view from the cached
// dataset and one request's parameters.
package dashboard

import (
	"macro-dashboard/charts"
	"macro-dashboard/filter"
)

// Tab identifies one dashboard tab.
type Tab string

const (
	TabIndicators Tab = "indicators"
	TabSentiment  Tab = "sentiment"
	TabWords      Tab = "words"
	TabForecast   Tab = "forecast"
	TabEvents     Tab = "events"
	TabSearch     Tab = "search"
)

// TabInfo describes a tab. Charted tabs are served as chart pages.
type TabInfo struct {
	ID      Tab    `json:"id"`
	Title   string `json:"title"`
	Charted bool   `json:"charted"`
}

// Tabs lists the tabs in display order.
var Tabs = []TabInfo{
	{ID: TabIndicators, Title: "Indicators", Charted: true},
	{ID: TabSentiment, Title: "Sentiment & Market", Charted: true},
	{ID: TabWords, Title: "Word Cloud & Correlation", Charted: true},
	{ID: TabForecast, Title: "GDP Forecasting"},
	{ID: TabEvents, Title: "Event Studies", Charted: true},
	{ID: TabSearch, Title: "Search & Allocation"},
}

// LookupTab returns the tab named id.
func LookupTab(id string) (TabInfo, bool) {
	for _, t := range Tabs {
		if string(t.ID) == id {
			return t, true
		}
	}
	return TabInfo{}, false
}

// Params are the inputs of one interaction.
type Params struct {
	Filter filter.Params
	Tab    Tab
	// EventVar is the box-plot variable of the event studies tab.
	EventVar string
	Query    string
	// Inputs holds slider values keyed by predictor name.
	Inputs map[string]float64
}

// EventVariable returns the selected economic variable, falling back to
// the first choice.
func (p Params) EventVariable() string {
	if charts.IsEconomicVariable(p.EventVar) {
		return p.EventVar
	}
	return charts.EconomicVariables[0]
}

// ActiveTab returns the selected tab, defaulting to the first one.
func (p Params) ActiveTab() Tab {
	if _, ok := LookupTab(string(p.Tab)); ok {
		return p.Tab
	}
	return Tabs[0].ID
}
