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

// Command fmp-calendar prints an FMP calendar as a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/fmp/fmp"
	"github.com/stockparfait/fmp/fmp/calendar"
	"github.com/stockparfait/fmp/stats"
	"github.com/stockparfait/fmp/table"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

// KeyEnv is the environment variable overriding the API key in the config.
const KeyEnv = "FMP_APIKEY"

type Flags struct {
	ConfigDir string // default: ~/.stockparfait/fmp
	LogLevel  logging.Level
	Calendar  calendar.Kind
	From      string
	To        string
	Symbol    string   // for historical-earning only
	CSV       bool     // dump CSV format; default: text
	Columns   []string // default: all
	Summary   string   // numeric column to summarize
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("fmp-calendar", flag.ExitOnError)
	fs.StringVar(&flags.ConfigDir, "config",
		filepath.Join(os.Getenv("HOME"), ".stockparfait", "fmp"),
		"configuration path")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	var kind, columns string
	fs.StringVar(&kind, "calendar", string(calendar.Earning), "calendar to print: "+
		strings.Join(kindNames(), ", "))
	fs.StringVar(&flags.From, "from", "", "start date YYYY-MM-DD")
	fs.StringVar(&flags.To, "to", "", "end date YYYY-MM-DD")
	fs.StringVar(&flags.Symbol, "symbol", "", "company symbol for historical-earning")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	fs.StringVar(&columns, "columns", "", "comma-separated columns to print; default: all")
	fs.StringVar(&flags.Summary, "summary", "", "print statistics of this numeric column")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	k, err := calendar.ParseKind(kind)
	if err != nil {
		return nil, errors.Annotate(err, "invalid -calendar")
	}
	flags.Calendar = k
	if k == calendar.HistoricalEarning && flags.Symbol == "" {
		return nil, errors.Reason("-symbol is required for %s", k)
	}
	if columns != "" {
		for _, c := range strings.Split(columns, ",") {
			if c = strings.TrimSpace(c); c != "" {
				flags.Columns = append(flags.Columns, c)
			}
		}
	}
	return &flags, nil
}

func kindNames() []string {
	var names []string
	for _, k := range calendar.Kinds() {
		names = append(names, string(k))
	}
	return names
}

type Config struct {
	Key string `toml:"key"` // user key for Financial Modeling Prep
}

// parseConfig reads config.toml in dir. A non-empty envKey overrides the key
// in the file, and then the file is optional.
func parseConfig(dir, envKey string) (*Config, error) {
	filePath := filepath.Join(dir, "config.toml")
	f, err := os.Open(filePath)
	if err != nil {
		if envKey != "" {
			return &Config{Key: envKey}, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			sample := `key = "YourSecretFMPKey"
`
			return nil, errors.Annotate(err,
				"config file '%s' does not exist and %s is not set.\nPlease create config file containing:\n%s",
				filePath, KeyEnv, sample)
		}
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	if envKey != "" {
		c.Key = envKey
	}
	if c.Key == "" {
		return nil, errors.Reason("no key in config file %s", filePath)
	}
	return &c, nil
}

// printData fetches the calendar and prints it to w. Failed requests are
// reported as warnings, and the rest of the data is still printed.
func printData(ctx context.Context, flags *Flags, config *Config, w io.Writer) error {
	ctx = fmp.UseClient(ctx, config.Key)
	res, err := calendar.Fetch(ctx, flags.Calendar, flags.From, flags.To, flags.Symbol)
	if err != nil {
		return errors.Annotate(err, "failed to fetch %s calendar", flags.Calendar)
	}
	if err := res.Err(); err != nil {
		if res.Absent() {
			return errors.Annotate(err, "no data for %s calendar", flags.Calendar)
		}
		logging.Warningf(ctx, "the data may be incomplete: %s", err.Error())
	}

	t := table.FromRecords(res.Records, flags.Columns...)
	if flags.CSV {
		err = t.WriteCSV(w, table.Params{})
	} else {
		err = t.WriteText(w, table.Params{})
	}
	if err != nil {
		return errors.Annotate(err, "failed to print the table")
	}
	if flags.Summary != "" {
		s := stats.Summarize(res.Records, flags.Summary)
		if _, err := fmt.Fprintf(w, "%s: %s\n", flags.Summary, s); err != nil {
			return errors.Annotate(err, "failed to print the summary")
		}
	}
	return nil
}

func run(ctx context.Context, flags *Flags) error {
	config, err := parseConfig(flags.ConfigDir, os.Getenv(KeyEnv))
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	ctx = fetch.UseClient(ctx, fmp.NewHTTPClient())
	return printData(ctx, flags, config, os.Stdout)
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
