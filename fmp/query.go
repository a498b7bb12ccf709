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
	"net/url"
	"strconv"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmp/dates"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
)

// DefaultMaxDepth is the default limit on how many times ReadChunked halves a
// date range whose response hit the row limit. It bounds the number of
// requests per original range at 2^DefaultMaxDepth.
const DefaultMaxDepth = 5

// LimitParam is the query parameter limiting the number of returned rows.
const LimitParam = "limit"

// Query is a builder for an endpoint query. Builder methods always create a
// copy of the query, leaving the original intact.
type Query struct {
	version APIVersion
	path    string // relative to the base URL, e.g. "earning_calendar"
	params  url.Values
	window  dates.Range // the "from" and "to" parameters, when set
}

// NewQuery creates a new v3 API query for the endpoint path.
func NewQuery(path string) *Query {
	return &Query{path: path, params: make(url.Values)}
}

// Copy creates a deep copy of the query.
func (q *Query) Copy() *Query {
	q2 := Query{version: q.version, path: q.path, window: q.window}
	q2.params = make(url.Values, len(q.params))
	for k, v := range q.params {
		q2.params[k] = append([]string(nil), v...)
	}
	return &q2
}

// Version sets the API version of the endpoint.
func (q *Query) Version(v APIVersion) *Query {
	q2 := q.Copy()
	q2.version = v
	return q2
}

// Set a query parameter, replacing its previous value.
func (q *Query) Set(key, value string) *Query {
	q2 := q.Copy()
	q2.params.Set(key, value)
	return q2
}

// Limit the number of rows returned by a single request.
func (q *Query) Limit(n int) *Query {
	return q.Set(LimitParam, strconv.Itoa(n))
}

// From sets the start date of the query; zero value unsets it.
func (q *Query) From(d dates.Date) *Query {
	q2 := q.Copy()
	q2.window.From = d
	return q2
}

// To sets the end date of the query; zero value unsets it.
func (q *Query) To(d dates.Date) *Query {
	q2 := q.Copy()
	q2.window.To = d
	return q2
}

// Range sets both dates of the query.
func (q *Query) Range(r dates.Range) *Query {
	q2 := q.Copy()
	q2.window = r
	return q2
}

// Path returns the URL path to add to the base URL.
func (q *Query) Path() string {
	return q.path
}

// Values returns the query values, including "from" and "to" when set. The
// date parameters take precedence over the same-named generic ones. Each call
// creates a new object, so the caller is free to modify it.
func (q *Query) Values() url.Values {
	v := make(url.Values, len(q.params)+2)
	for k, vs := range q.params {
		v[k] = append([]string(nil), vs...)
	}
	if !q.window.From.IsZero() {
		v.Set("from", q.window.From.String())
	}
	if !q.window.To.IsZero() {
		v.Set("to", q.window.To.String())
	}
	return v
}

// limit returns the row limit declared by the query, if any. Only a positive
// integer counts as a limit.
func (q *Query) limit(ctx context.Context) (int, bool) {
	s := q.params.Get(LimitParam)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		logging.Warningf(ctx, "ignoring invalid %s=%s for truncation checks", LimitParam, s)
		return 0, false
	}
	return n, true
}

// request executes the query with the Client from the context as a single
// request. A failure is logged and recorded in the returned Slice.
func (q *Query) request(ctx context.Context, depth int) ([]Record, Slice) {
	s := Slice{Range: q.window, Depth: depth}
	client := GetClient(ctx)
	if client == nil {
		s.Err = errors.Reason("no FMP client in context")
		logging.Errorf(ctx, "%s %s: %s", q.version, q.path, s.Err.Error())
		return nil, s
	}
	query := q.Values()
	query.Set("apikey", client.apiKey)
	records, err := client.get(ctx, client.baseURL(q.version)+q.path, query)
	if err != nil {
		s.Err = errors.Annotate(err, "%s %s %s", q.version, q.path, q.window)
		logging.Errorf(ctx, "%s", s.Err.Error())
		return nil, s
	}
	s.Rows = len(records)
	return records, s
}

// Read executes the query as a single request, with the dates passed through
// as is.
func (q *Query) Read(ctx context.Context) *Result {
	var res Result
	res.add(q.request(ctx, 0))
	return &res
}

// ReadChunked executes the query as a sequence of requests, one per date
// range of at most interval days, in chronological order. Unset dates are
// passed through, and then there is only one request.
//
// When the query declares a limit and a request returns at least that many
// rows, the response was likely truncated. The range of such a request is then
// re-queried in the same manner with the half of the interval, and its
// results replace the truncated ones. This repeats at most maxDepth times for
// any original range.
func (q *Query) ReadChunked(ctx context.Context, interval float64, maxDepth int) *Result {
	limit, hasLimit := q.limit(ctx)
	c := chunker{
		query:    q,
		limit:    limit,
		hasLimit: hasLimit,
		maxDepth: maxDepth,
	}
	return c.read(ctx, interval, q.window, 0)
}

// chunker implements the recursion of ReadChunked.
type chunker struct {
	query    *Query
	limit    int
	hasLimit bool
	maxDepth int
}

// truncated checks if a slice is to be re-queried in parts. A range that
// cannot be split any further is accepted as is.
func (c *chunker) truncated(s Slice) bool {
	if !c.hasLimit || s.Err != nil || s.Rows < c.limit || s.Depth >= c.maxDepth {
		return false
	}
	return s.Range.Bounded() && s.Range.From.Before(s.Range.To)
}

func (c *chunker) read(ctx context.Context, interval float64, r dates.Range, depth int) *Result {
	f := func(sub dates.Range, res *Result) *Result {
		records, s := c.query.Range(sub).request(ctx, depth)
		if !c.truncated(s) {
			logging.Debugf(ctx, "%s depth %d dates %s: %d rows",
				c.query.path, depth, sub, s.Rows)
			res.add(records, s)
			return res
		}
		logging.Infof(ctx,
			"%s depth %d dates %s: returned limit of %d rows, retrying with %g-day ranges",
			c.query.path, depth, sub, c.limit, interval/2)
		s.Split = true
		res.add(nil, s)
		res.extend(c.read(ctx, interval/2, sub, depth+1))
		return res
	}
	return iterator.Reduce[dates.Range, *Result](
		dates.Split(interval, r.From, r.To), &Result{}, f)
}
