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

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/fmp/fmp"
	"github.com/stockparfait/fmp/fmp/calendar"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(t *testing.T) {
	t.Parallel()

	tmpdir, tmpdirErr := os.MkdirTemp("", "test_fmp_calendar")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("parseFlags", t, func() {
		Convey("all flags", func() {
			flags, err := parseFlags([]string{
				"-config", "path/to/config", "-log-level", "warning",
				"-calendar", "historical-earning", "-symbol", "AAPL",
				"-from", "2024-01-01", "-to", "2024-02-01", "-csv",
				"-columns", "date, eps,,revenue", "-summary", "eps"})
			So(err, ShouldBeNil)
			So(flags.ConfigDir, ShouldEqual, "path/to/config")
			So(flags.LogLevel, ShouldEqual, logging.Warning)
			So(flags.Calendar, ShouldEqual, calendar.HistoricalEarning)
			So(flags.Symbol, ShouldEqual, "AAPL")
			So(flags.From, ShouldEqual, "2024-01-01")
			So(flags.To, ShouldEqual, "2024-02-01")
			So(flags.CSV, ShouldBeTrue)
			So(flags.Columns, ShouldResemble, []string{"date", "eps", "revenue"})
			So(flags.Summary, ShouldEqual, "eps")
		})

		Convey("defaults", func() {
			flags, err := parseFlags([]string{})
			So(err, ShouldBeNil)
			So(flags.Calendar, ShouldEqual, calendar.Earning)
			So(flags.LogLevel, ShouldEqual, logging.Info)
			So(flags.Columns, ShouldBeNil)
		})

		Convey("unknown calendar", func() {
			_, err := parseFlags([]string{"-calendar", "weather"})
			So(err, ShouldNotBeNil)
		})

		Convey("historical earnings require a symbol", func() {
			_, err := parseFlags([]string{"-calendar", "historical-earning"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("parseConfig", t, func() {
		Convey("missing file", func() {
			_, err := parseConfig(filepath.Join(tmpdir, "none"), "")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "does not exist")

			c, err := parseConfig(filepath.Join(tmpdir, "none"), "envkey")
			So(err, ShouldBeNil)
			So(c.Key, ShouldEqual, "envkey")
		})

		Convey("from file", func() {
			dir := filepath.Join(tmpdir, "config")
			So(os.MkdirAll(dir, 0700), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, "config.toml"),
				[]byte("key = \"filekey\"\n"), 0600), ShouldBeNil)

			c, err := parseConfig(dir, "")
			So(err, ShouldBeNil)
			So(c.Key, ShouldEqual, "filekey")

			c, err = parseConfig(dir, "envkey")
			So(err, ShouldBeNil)
			So(c.Key, ShouldEqual, "envkey")
		})

		Convey("empty key", func() {
			dir := filepath.Join(tmpdir, "empty")
			So(os.MkdirAll(dir, 0700), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, "config.toml"),
				[]byte("# no key\n"), 0600), ShouldBeNil)
			_, err := parseConfig(dir, "")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("printData works", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()

		ctx := fetch.UseClient(context.Background(), server.Client())
		fmp.URLv3 = server.URL() + "/api/v3/"
		fmp.URLv4 = server.URL() + "/api/v4/"
		config := &Config{Key: "testkey"}

		Convey("text with a summary", func() {
			server.ResponseBody = []string{`[
  {"date": "2024-01-25", "symbol": "MSFT", "eps": 2.5, "time": "amc"},
  {"date": "2024-02-01", "symbol": "AAPL", "eps": 1.5, "time": "amc"}
]`}
			flags, err := parseFlags([]string{
				"-calendar", "ipo", "-from", "2024-01-01",
				"-columns", "symbol,eps", "-summary", "eps"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, config, &buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
symbol | eps
------ | ---
  MSFT | 2.5
  AAPL | 1.5
eps: count=2 mean=2 stddev=0.7071067811865476 median=2 min=1.5 max=2.5
`)
			So(server.RequestPath, ShouldEqual, "/api/v3/ipo_calendar")
			So(server.RequestQuery.Get("apikey"), ShouldEqual, "testkey")
		})

		Convey("CSV with all columns", func() {
			server.ResponseBody = []string{`[{"symbol": "AAPL", "date": "2024-02-01"}]`}
			flags, err := parseFlags([]string{"-calendar", "dividend", "-csv"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, config, &buf), ShouldBeNil)
			So("\n"+buf.String(), ShouldEqual, `
date,symbol
2024-02-01,AAPL
`)
		})

		Convey("bad date", func() {
			flags, err := parseFlags([]string{"-calendar", "split", "-from", "01/01/2024"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(printData(ctx, flags, config, &buf), ShouldNotBeNil)
		})

		Convey("failed request", func() {
			server.ResponseBody = []string{`{"Error Message": "Invalid API KEY."}`}
			flags, err := parseFlags([]string{"-calendar", "economic"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			err = printData(ctx, flags, config, &buf)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no data for economic calendar")
			So(buf.String(), ShouldEqual, "")
		})

		Convey("unauthorized key", func() {
			server.ResponseStatus = []int{http.StatusUnauthorized}
			server.ResponseBody = []string{`{"Error Message": "Invalid API KEY."}`}
			flags, err := parseFlags([]string{"-calendar", "earning",
				"-from", "2024-01-01", "-to", "2024-01-10"})
			So(err, ShouldBeNil)
			var buf bytes.Buffer
			So(func() { err = printData(ctx, flags, config, &buf) }, ShouldNotPanic)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no data for earning calendar")
			So(err.Error(), ShouldContainSubstring, "401")
			So(err.Error(), ShouldContainSubstring, "Invalid API KEY.")
			So(buf.String(), ShouldEqual, "")
		})
	})
}
