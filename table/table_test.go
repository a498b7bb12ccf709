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

package table

import (
	"bytes"
	"testing"

	"github.com/stockparfait/fmp/fmp"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	t.Parallel()

	records := []fmp.Record{
		{"symbol": "AAPL", "date": "2024-02-01", "eps": 2.18},
		{"symbol": "MSFT", "date": "2024-01-30", "eps": nil, "revenue": 62020000000.0},
	}

	Convey("Cell formats JSON values", t, func() {
		So(Cell(nil), ShouldEqual, "")
		So(Cell("abc"), ShouldEqual, "abc")
		So(Cell(2.5), ShouldEqual, "2.5")
		So(Cell(62020000000.0), ShouldEqual, "62020000000")
		So(Cell(true), ShouldEqual, "true")
	})

	Convey("Columns is the sorted union of keys", t, func() {
		So(Columns(records), ShouldResemble, []string{"date", "eps", "revenue", "symbol"})
		So(Columns(nil), ShouldResemble, []string{})
	})

	Convey("FromRecords", t, func() {
		Convey("with selected columns", func() {
			t := FromRecords(records, "symbol", "eps")
			So(t.Header, ShouldResemble, []string{"symbol", "eps"})
			So(len(t.Rows), ShouldEqual, 2)
			So(t.Rows[0].CSV(), ShouldResemble, []string{"AAPL", "2.18"})
			So(t.Rows[1].CSV(), ShouldResemble, []string{"MSFT", ""})
		})

		Convey("with all columns", func() {
			t := FromRecords(records)
			So(t.Rows[0].CSV(), ShouldResemble, []string{"2024-02-01", "2.18", "", "AAPL"})
		})
	})

	Convey("Table methods work", t, func() {
		t := FromRecords(records, "symbol", "date")
		headless := NewTable()
		headless.AddRow(t.Rows...)

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
symbol,date
AAPL,2024-02-01
MSFT,2024-01-30
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(headless.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
AAPL,2024-02-01
MSFT,2024-01-30
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(t.WriteCSV(&buf, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
AAPL,2024-02-01
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
symbol |       date
------ | ----------
  AAPL | 2024-02-01
  MSFT | 2024-01-30
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(headless.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
AAPL | 2024-02-01
MSFT | 2024-01-30
`)
			})

			Convey("Limited rows and width, no header", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{Rows: 1, NoHeader: true, MaxColWidth: 4}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
AAPL | 20..
`)
			})

			Convey("Invalid width", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{MaxColWidth: 3}), ShouldNotBeNil)
			})
		})
	})
}
