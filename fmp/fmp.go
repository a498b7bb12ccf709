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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/fmp/dates"
	"github.com/stockparfait/logging"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// Default base URLs of the two API versions. They may be overwritten in tests
// before creating a new client.
var (
	URLv3 = "https://financialmodelingprep.com/api/v3/"
	URLv4 = "https://financialmodelingprep.com/api/v4/"
)

// Timeouts of the HTTP client created by NewHTTPClient.
const (
	ConnectTimeout = 5 * time.Second
	ReadTimeout    = 30 * time.Second
)

// APIVersion selects the base URL of an endpoint.
type APIVersion int

const (
	V3 APIVersion = iota
	V4
)

func (v APIVersion) String() string {
	if v == V4 {
		return "v4"
	}
	return "v3"
}

// getter issues a GET request and returns the normalized records.
type getter func(ctx context.Context, uri string, query url.Values) ([]Record, error)

// Client for querying FMP endpoints.
type Client struct {
	urlV3  string
	urlV4  string
	apiKey string
	get    getter // replaced in tests
}

// newClient creates a new client.
func newClient(urlV3, urlV4, apiKey string) *Client {
	return &Client{
		urlV3:  urlV3,
		urlV4:  urlV4,
		apiKey: apiKey,
		get:    getJSON,
	}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URLv3, URLv4, apiKey))
}

// baseURL of the API version.
func (c *Client) baseURL(v APIVersion) string {
	if v == V4 {
		return c.urlV4
	}
	return c.urlV3
}

// NewHTTPClient creates an HTTP client with the connection and read timeouts
// expected by FMP. Inject it with fetch.UseClient.
//
// The overall Timeout also bounds reading the body, since fetch does not pass
// the context on to the request.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: ConnectTimeout + ReadTimeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: ConnectTimeout}).DialContext,
			TLSHandshakeTimeout:   ConnectTimeout,
			ResponseHeaderTimeout: ReadTimeout,
		},
	}
}

// Record is a single JSON object of an FMP response.
type Record map[string]interface{}

// getJSON fetches the URL and decodes the response body into records.
func getJSON(ctx context.Context, uri string, query url.Values) ([]Record, error) {
	resp, err := fetch.Get(ctx, uri, query)
	if resp != nil && (err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300) {
		// The fetch error for a 5xx status has a nil cause; don't print it.
		return nil, statusError(uri, resp)
	}
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch %s", uri)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read response from %s", uri)
	}
	records, err := decodeRecords(body)
	if err != nil {
		return nil, errors.Annotate(err, "bad response from %s", uri)
	}
	if len(records) == 0 {
		logging.Warningf(ctx, "response from %s appears to have no data", uri)
	}
	return records, nil
}

// maxErrorBody is the size of the response prefix quoted in a status error.
const maxErrorBody = 512

// statusError describes a response with a non-2xx status, quoting the FMP
// error message when the body has one, and closes the body.
func statusError(uri string, resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if err == nil {
		var m map[string]interface{}
		if json.Unmarshal(body, &m) == nil {
			if v, ok := m[errorMessageKey]; ok {
				msg = fmt.Sprintf("%v", v)
			}
		}
	}
	if msg == "" {
		return errors.Reason("%s: status %s", uri, resp.Status)
	}
	return errors.Reason("%s: status %s: %s", uri, resp.Status, msg)
}

// errorMessageKey is how FMP reports an error in a response body.
const errorMessageKey = "Error Message"

// decodeRecords normalizes a response body. An empty body, a body of
// whitespace and an empty JSON object all yield an empty list. A non-empty
// object is a list of one record, unless it's an FMP error message.
func decodeRecords(body []byte) ([]Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []Record{}, nil
	}
	var js interface{}
	if err := json.Unmarshal(body, &js); err != nil {
		return nil, errors.Annotate(err, "failed to decode JSON")
	}
	switch v := js.(type) {
	case []interface{}:
		records := make([]Record, 0, len(v))
		for i, el := range v {
			m, ok := el.(map[string]interface{})
			if !ok {
				return nil, errors.Reason("element %d is not an object: %v", i, el)
			}
			records = append(records, Record(m))
		}
		return records, nil
	case map[string]interface{}:
		if len(v) == 0 {
			return []Record{}, nil
		}
		if msg, ok := v[errorMessageKey]; ok && len(v) == 1 {
			return nil, errors.Reason("FMP error: %v", msg)
		}
		return []Record{Record(v)}, nil
	}
	return nil, errors.Reason("expected a list or an object, got %v", js)
}

// Slice is the status of a single request covering one date range.
type Slice struct {
	Range dates.Range
	Depth int   // number of re-splits leading to this slice
	Rows  int   // number of records the request returned
	Split bool  // the records were replaced by re-querying the range in parts
	Err   error // the request failed and contributed no records
}

// Result of a query: the records in the order of the requests which produced
// them, and the status of each request.
type Result struct {
	Records []Record
	Slices  []Slice
}

// add a slice with its records to the result.
func (r *Result) add(records []Record, s Slice) {
	r.Slices = append(r.Slices, s)
	r.Records = append(r.Records, records...)
}

// extend the result with another result's records and slices.
func (r *Result) extend(r2 *Result) {
	r.Slices = append(r.Slices, r2.Slices...)
	r.Records = append(r.Records, r2.Records...)
}

// Failed returns the slices whose requests failed.
func (r *Result) Failed() []Slice {
	var res []Slice
	for _, s := range r.Slices {
		if s.Err != nil {
			res = append(res, s)
		}
	}
	return res
}

// Absent checks if the query produced no answer at all: every request failed,
// or none was issued.
func (r *Result) Absent() bool {
	return len(r.Failed()) == len(r.Slices)
}

// Err summarizes the failed requests, if any. A nil error means that every
// request succeeded, and thus an empty Records is a true empty result.
func (r *Result) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	msgs := make([]string, len(failed))
	for i, s := range failed {
		msgs[i] = s.Range.String() + ": " + s.Err.Error()
	}
	return errors.Reason("%d of %d requests failed:\n  %s",
		len(failed), len(r.Slices), strings.Join(msgs, "\n  "))
}
