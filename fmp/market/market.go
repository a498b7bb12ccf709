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

// Package market implements FMP endpoints for prices, technical indicators,
// financial statements and the stock screener.
//
// Enumerated parameters are checked against the allow-lists in package fmp.
// An invalid value is logged and the parameter is omitted from the request,
// unless it is a part of the URL path, in which case no request is sent.
package market

import (
	"context"
	"strconv"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmp/dates"
	"github.com/stockparfait/fmp/fmp"
	"github.com/stockparfait/logging"
)

// HistoricalChart queries intraday price bars of the given size between the
// optional dates. An invalid bar size results in an empty Result.
func HistoricalChart(ctx context.Context, timeDelta, symbol, from, to string) (*fmp.Result, error) {
	if symbol == "" {
		return nil, errors.Reason("historical chart requires a symbol")
	}
	f, err := dates.ParseOptional(from)
	if err != nil {
		return nil, errors.Annotate(err, "invalid from date")
	}
	t, err := dates.ParseOptional(to)
	if err != nil {
		return nil, errors.Annotate(err, "invalid to date")
	}
	delta, ok := fmp.ValidateTimeDelta(ctx, timeDelta)
	if !ok {
		return &fmp.Result{}, nil
	}
	q := fmp.NewQuery("historical-chart/" + delta + "/" + symbol).From(f).To(t)
	return q.Read(ctx), nil
}

// TechnicalIndicator queries a technical indicator of the given type and
// period. An invalid bar size results in an empty Result, and an invalid
// indicator type is omitted.
func TechnicalIndicator(ctx context.Context, timeDelta, symbol, statType string, period int) (*fmp.Result, error) {
	if symbol == "" {
		return nil, errors.Reason("technical indicator requires a symbol")
	}
	delta, ok := fmp.ValidateTechnicalTimeDelta(ctx, timeDelta)
	if !ok {
		return &fmp.Result{}, nil
	}
	q := fmp.NewQuery("technical_indicator/" + delta + "/" + symbol)
	if v, ok := fmp.ValidateStatisticsType(ctx, statType); ok {
		q = q.Set("type", v)
	}
	if period > 0 {
		q = q.Set("period", strconv.Itoa(period))
	}
	return q.Read(ctx), nil
}

// IncomeStatement queries the income statements of a company, most recent
// first. An invalid period is omitted, and the server defaults to "annual".
func IncomeStatement(ctx context.Context, symbol, period string, limit int) (*fmp.Result, error) {
	if symbol == "" {
		return nil, errors.Reason("income statement requires a symbol")
	}
	q := fmp.NewQuery("income-statement/" + symbol)
	if v, ok := fmp.ValidatePeriod(ctx, period); ok {
		q = q.Set("period", v)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Read(ctx), nil
}

// ScreenerFilter is the set of stock screener criteria. Zero values are not
// sent.
type ScreenerFilter struct {
	MarketCapMoreThan  int64
	MarketCapLowerThan int64
	Sector             string
	Industry           string
	Exchange           string
	Limit              int
}

// StockScreener queries the companies matching the filter.
func StockScreener(ctx context.Context, f ScreenerFilter) (*fmp.Result, error) {
	q := fmp.NewQuery("stock-screener")
	if f.MarketCapMoreThan > 0 {
		q = q.Set("marketCapMoreThan", strconv.FormatInt(f.MarketCapMoreThan, 10))
	}
	if f.MarketCapLowerThan > 0 {
		q = q.Set("marketCapLowerThan", strconv.FormatInt(f.MarketCapLowerThan, 10))
	}
	if f.Sector != "" {
		if v, ok := fmp.ValidateSector(ctx, f.Sector); ok {
			q = q.Set("sector", v)
		}
	}
	if f.Industry != "" {
		if v, ok := fmp.ValidateIndustry(ctx, f.Industry); ok {
			q = q.Set("industry", v)
		}
	}
	if f.Exchange != "" {
		q = q.Set("exchange", f.Exchange)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	logging.Debugf(ctx, "stock screener: %v", q.Values())
	return q.Read(ctx), nil
}

// SectorsPerformance queries the current change in price by sector.
func SectorsPerformance(ctx context.Context) (*fmp.Result, error) {
	return fmp.NewQuery("sectors-performance").Read(ctx), nil
}
