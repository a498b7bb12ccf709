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

// Package fmp implements a client for the Financial Modeling Prep (FMP) REST
// API.
//
// Official documentation is at https://site.financialmodelingprep.com/developer/docs .
//
// Every FMP endpoint responds with a JSON list of objects, which this package
// returns as a list of generic Records in the order received. Empty responses
// are normalized to an empty list.
//
// Several endpoints restrict the date window of a single request, or silently
// truncate the response at a row limit without signaling it. Query.ReadChunked
// splits a wide date window into narrower ones, and when a window's response
// reaches the requested limit, re-queries that window in halves, up to a
// bounded depth. The results are stitched back in chronological order.
//
// Network failures never abort a query. Each failed request is logged and
// recorded as a failed Slice in the Result, and contributes no records.
//
// Specific endpoints are implemented in the subpackages.
package fmp
