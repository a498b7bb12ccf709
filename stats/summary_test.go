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

package stats

import (
	"math"
	"testing"

	"github.com/stockparfait/fmp/fmp"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	Convey("Values", t, func() {
		records := []fmp.Record{
			{"eps": 1.5},
			{"eps": nil},
			{"eps": "2.5"},
			{"eps": "n/a"},
			{"revenue": 10.0},
			{"eps": true},
			{"eps": 0.0},
		}
		So(Values(records, "eps"), ShouldResemble, []float64{1.5, 2.5, 0.0})
		So(Values(records, "ebitda"), ShouldBeNil)
	})

	Convey("NewSummary", t, func() {
		Convey("regular sample", func() {
			data := []float64{2.5, 1.5, 0.0, 2.0}
			s := NewSummary(data)
			So(s.Count, ShouldEqual, 4)
			So(s.Mean, ShouldEqual, 1.5)
			So(testutil.Round(s.StdDev, 5), ShouldEqual,
				testutil.Round(math.Sqrt(3.5/3.0), 5))
			So(s.Median, ShouldEqual, 1.75)
			So(s.Min, ShouldEqual, 0.0)
			So(s.Max, ShouldEqual, 2.5)
			So(data, ShouldResemble, []float64{2.5, 1.5, 0.0, 2.0})
		})

		Convey("odd and even counts", func() {
			So(NewSummary([]float64{3.0, 1.0}).Median, ShouldEqual, 2.0)
			So(NewSummary([]float64{5.0, 1.0, 3.0}).Median, ShouldEqual, 3.0)
			So(NewSummary([]float64{4.0, 1.0, 3.0, 2.0}).Median, ShouldEqual, 2.5)
		})

		Convey("single value", func() {
			s := NewSummary([]float64{3.0})
			So(s, ShouldResemble, Summary{
				Count: 1, Mean: 3.0, Median: 3.0, Min: 3.0, Max: 3.0,
			})
		})

		Convey("empty sample", func() {
			So(NewSummary(nil), ShouldResemble, Summary{})
		})
	})

	Convey("Summarize", t, func() {
		records := []fmp.Record{
			{"symbol": "A", "eps": 1.0},
			{"symbol": "B", "eps": 3.0},
			{"symbol": "C"},
		}
		s := Summarize(records, "eps")
		So(s.Count, ShouldEqual, 2)
		So(s.Mean, ShouldEqual, 2.0)
		So(testutil.Round(s.StdDev, 5), ShouldEqual, testutil.Round(math.Sqrt2, 5))
		So(s.String(), ShouldEqual,
			"count=2 mean=2 stddev=1.4142135623730951 median=2 min=1 max=3")
	})
}
