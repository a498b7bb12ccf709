// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package calendar implements the FMP calendar endpoints: earnings, IPOs,
// splits, dividends and economic events.
//
// Dates are strings in YYYY-MM-DD format; an empty string leaves the date
// unset, and the server applies its own default. A malformed date is the only
// error returned by this package. Request failures are reported in the
// returned fmp.Result.
package calendar

import (
	"context"
	"sort"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmp/dates"
	"github.com/stockparfait/fmp/fmp"
)

const (
	// EarningInterval is the widest date window accepted by the earnings
	// calendar in a single request.
	EarningInterval = 80

	// ConfirmedInterval is the date window of a single request for confirmed
	// earnings. The endpoint truncates silently at ConfirmedLimit rows.
	ConfirmedInterval = 20
	ConfirmedLimit    = 1000

	// DefaultLimit of rows for endpoints with a limit parameter.
	DefaultLimit = 10
)

// query sets up the endpoint query with the optional dates.
func query(path, from, to string) (*fmp.Query, error) {
	f, err := dates.ParseOptional(from)
	if err != nil {
		return nil, errors.Annotate(err, "invalid from date")
	}
	t, err := dates.ParseOptional(to)
	if err != nil {
		return nil, errors.Annotate(err, "invalid to date")
	}
	return fmp.NewQuery(path).From(f).To(t), nil
}

// EarningCalendar queries the earnings calendar. A window wider than
// EarningInterval days is fetched in several requests.
func EarningCalendar(ctx context.Context, from, to string) (*fmp.Result, error) {
	q, err := query("earning_calendar", from, to)
	if err != nil {
		return nil, errors.Annotate(err, "earning calendar")
	}
	return q.ReadChunked(ctx, EarningInterval, fmp.DefaultMaxDepth), nil
}

// EarningCalendarConfirmed queries the confirmed earnings calendar. The window
// is fetched in ConfirmedInterval-day requests, each re-queried in smaller
// parts when it hits the undocumented ConfirmedLimit of rows.
func EarningCalendarConfirmed(ctx context.Context, from, to string) (*fmp.Result, error) {
	q, err := query("earning-calendar-confirmed", from, to)
	if err != nil {
		return nil, errors.Annotate(err, "confirmed earning calendar")
	}
	q = q.Version(fmp.V4).Limit(ConfirmedLimit)
	return q.ReadChunked(ctx, ConfirmedInterval, fmp.DefaultMaxDepth), nil
}

// HistoricalEarningCalendar queries the past and upcoming earnings of a
// company. A non-positive limit means DefaultLimit.
func HistoricalEarningCalendar(ctx context.Context, symbol string, limit int) (*fmp.Result, error) {
	if symbol == "" {
		return nil, errors.Reason("historical earning calendar requires a symbol")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := fmp.NewQuery("historical/earning_calendar/"+symbol).Set("symbol", symbol).Limit(limit)
	return q.Read(ctx), nil
}

// passThrough queries an endpoint with a single request. The server limits
// the window to about 3 months.
func passThrough(ctx context.Context, path, from, to string) (*fmp.Result, error) {
	q, err := query(path, from, to)
	if err != nil {
		return nil, errors.Annotate(err, "%s", path)
	}
	return q.Read(ctx), nil
}

// IPOCalendar queries the IPO calendar.
func IPOCalendar(ctx context.Context, from, to string) (*fmp.Result, error) {
	return passThrough(ctx, "ipo_calendar", from, to)
}

// StockSplitCalendar queries the stock split calendar.
func StockSplitCalendar(ctx context.Context, from, to string) (*fmp.Result, error) {
	return passThrough(ctx, "stock_split_calendar", from, to)
}

// DividendCalendar queries the dividend calendar.
func DividendCalendar(ctx context.Context, from, to string) (*fmp.Result, error) {
	return passThrough(ctx, "stock_dividend_calendar", from, to)
}

// EconomicCalendar queries the economic events calendar.
func EconomicCalendar(ctx context.Context, from, to string) (*fmp.Result, error) {
	return passThrough(ctx, "economic_calendar", from, to)
}

// Kind names a calendar for Fetch.
type Kind string

const (
	Earning           = Kind("earning")
	EarningConfirmed  = Kind("earning-confirmed")
	HistoricalEarning = Kind("historical-earning")
	IPO               = Kind("ipo")
	StockSplit        = Kind("split")
	Dividend          = Kind("dividend")
	Economic          = Kind("economic")
)

type dateFunc = func(ctx context.Context, from, to string) (*fmp.Result, error)

var dateCalendars = map[Kind]dateFunc{
	Earning:          EarningCalendar,
	EarningConfirmed: EarningCalendarConfirmed,
	IPO:              IPOCalendar,
	StockSplit:       StockSplitCalendar,
	Dividend:         DividendCalendar,
	Economic:         EconomicCalendar,
}

// Kinds lists all the calendar names in alphabetical order.
func Kinds() []Kind {
	kinds := []Kind{HistoricalEarning}
	for k := range dateCalendars {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind checks that the name is a known calendar.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	names := []string{}
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return "", errors.Reason("unknown calendar '%s', expected one of: %s",
		s, strings.Join(names, ", "))
}

// Fetch queries the calendar of the given kind. The symbol is used only by
// the historical earnings calendar, which ignores the dates.
func Fetch(ctx context.Context, kind Kind, from, to, symbol string) (*fmp.Result, error) {
	if kind == HistoricalEarning {
		return HistoricalEarningCalendar(ctx, symbol, DefaultLimit)
	}
	f, ok := dateCalendars[kind]
	if !ok {
		return nil, errors.Reason("unknown calendar '%s'", kind)
	}
	return f(ctx, from, to)
}
