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

package fmp

import (
	"context"
	"strings"

	"github.com/stockparfait/logging"
)

// Choices is an allow-list of values of an enumerated query parameter.
type Choices []string

// Contains checks that s equals one of the choices.
func (c Choices) Contains(s string) bool {
	for _, v := range c {
		if s == v {
			return true
		}
	}
	return false
}

// validate returns the value if it's allowed. Otherwise, it logs an error and
// returns false, and the caller is expected to omit the parameter.
func (c Choices) validate(ctx context.Context, name, value string) (string, bool) {
	if c.Contains(value) {
		return value, true
	}
	logging.Errorf(ctx, "invalid %s value: '%s'. Valid options: %s",
		name, value, strings.Join(c, ", "))
	return "", false
}

// Allowed values of enumerated parameters.
var (
	Periods = Choices{"annual", "quarter"}

	Sectors = Choices{
		"Consumer Cyclical",
		"Energy",
		"Technology",
		"Industrials",
		"Financial Services",
		"Basic Materials",
		"Communication Services",
		"Consumer Defensive",
		"Healthcare",
		"Real Estate",
		"Utilities",
		"Industrial Goods",
		"Financial",
		"Services",
		"Conglomerates",
	}

	Industries = Choices{
		"Autos",
		"Banks",
		"Banks Diversified",
		"Software",
		"Banks Regional",
		"Beverages Alcoholic",
		"Beverages Brewers",
		"Beverages Non-Alcoholic",
	}

	TimeDeltas = Choices{"1min", "5min", "15min", "30min", "1hour", "4hour"}

	// TechnicalTimeDeltas are TimeDeltas plus "daily".
	TechnicalTimeDeltas = append(append(Choices{}, TimeDeltas...), "daily")

	SeriesTypes = Choices{"line"}

	StatisticsTypes = Choices{
		"sma", "ema", "wma", "dema", "tema", "williams", "rsi", "adx", "standardDeviation",
	}
)

// ValidatePeriod checks the reporting period of financial statements.
func ValidatePeriod(ctx context.Context, value string) (string, bool) {
	return Periods.validate(ctx, "period", value)
}

// ValidateSector checks the company sector name.
func ValidateSector(ctx context.Context, value string) (string, bool) {
	return Sectors.validate(ctx, "sector", value)
}

// ValidateIndustry checks the company industry name.
func ValidateIndustry(ctx context.Context, value string) (string, bool) {
	return Industries.validate(ctx, "industry", value)
}

// ValidateTimeDelta checks the bar size of intraday charts.
func ValidateTimeDelta(ctx context.Context, value string) (string, bool) {
	return TimeDeltas.validate(ctx, "time_delta", value)
}

// ValidateTechnicalTimeDelta checks the bar size of technical indicators.
func ValidateTechnicalTimeDelta(ctx context.Context, value string) (string, bool) {
	return TechnicalTimeDeltas.validate(ctx, "time_delta", value)
}

// ValidateSeriesType checks the series type of historical prices.
func ValidateSeriesType(ctx context.Context, value string) (string, bool) {
	return SeriesTypes.validate(ctx, "series_type", value)
}

// ValidateStatisticsType checks the technical indicator type.
func ValidateStatisticsType(ctx context.Context, value string) (string, bool) {
	return StatisticsTypes.validate(ctx, "statistics_type", value)
}
