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

// Package stats computes summary statistics over columns of FMP records.
package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/stockparfait/fmp/fmp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Values extracts the numeric values of the column in the order of records.
// Missing, null and non-numeric values are skipped. Strings are accepted when
// they parse as a number.
func Values(records []fmp.Record, column string) []float64 {
	var res []float64
	for _, r := range records {
		switch v := r[column].(type) {
		case float64:
			res = append(res, v)
		case string:
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				res = append(res, x)
			}
		}
	}
	return res
}

// Summary statistics of a sample.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // unbiased; 0 for fewer than 2 values
	Median float64
	Min    float64
	Max    float64
}

// NewSummary computes the statistics of the sample. The data is not modified.
func NewSummary(data []float64) Summary {
	s := Summary{Count: len(data)}
	if s.Count == 0 {
		return s
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(data, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(data, nil)
	}
	// Mean of the two middle values for an even count.
	n := len(sorted)
	s.Median = (sorted[(n-1)/2] + sorted[n/2]) / 2
	s.Min = floats.Min(data)
	s.Max = floats.Max(data)
	return s
}

// Summarize computes the statistics of the numeric values of the column.
func Summarize(records []fmp.Record, column string) Summary {
	return NewSummary(Values(records, column))
}

func (s Summary) String() string {
	return fmt.Sprintf("count=%d mean=%g stddev=%g median=%g min=%g max=%g",
		s.Count, s.Mean, s.StdDev, s.Median, s.Min, s.Max)
}
