// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package linkedin dispatches people and job searches to the LinkedIn data
// API published on RapidAPI.
//
// A Client builds one GET request per dispatch from a SearchKind and a set of
// SearchParameters, retries transient failures a bounded number of times with
// a fixed wait, and decodes the "items" array of the response into a
// core.ResultSet.
package linkedin
