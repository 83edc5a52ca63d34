// Copyright 2020-2021 Dolthub, Inc.
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

// Package likematch translates a SQL LIKE pattern into a compiled regular
// expression. Grounded on go-mysql-server's internal/regex package: that
// package is a pluggable multi-engine regex registry whose default engine
// ("go") is the standard library regexp package — this only needs the one
// translation used here, so it skips the registry indirection and calls
// regexp directly, the same engine that default resolves to.
package likematch

import (
	"regexp"
	"strings"
)

// Compile translates pattern ('%' matches any run including empty, '_'
// matches exactly one character, all other regex metacharacters are
// escaped) into a case-insensitive anchored regular expression.
func Compile(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?is)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
