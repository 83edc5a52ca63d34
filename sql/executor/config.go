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

// Package executor implements the query executor: the
// fixed-stage pipeline from CTEs through OFFSET/LIMIT, predicate pushdown
// over comma-joined FROM lists, and the subquery dispatch hook installed
// on every sql.Context it builds.
package executor

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vtabledb/fedsql/sql"
)

// Config holds the executor's tunables: comma-join cap and query
// cancellation. Modeled on go-mysql-server's engine.go Config pattern of a
// small struct, loaded optionally from a YAML file via gopkg.in/yaml.v2.
type Config struct {
	// MaxCommaJoinTables caps an implicit comma-joined FROM list; over the
	// limit is a fatal error. Zero means use the default of 4.
	MaxCommaJoinTables int `yaml:"max_comma_join_tables"`
	// QueryTimeoutSeconds bounds a single statement's wall-clock execution;
	// zero means no deadline.
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds"`
	// Dialect controls only how identifiers are rendered back into
	// diagnostics (currently the unknown-table error); evaluation itself
	// never depends on it.
	Dialect sql.Dialect `yaml:"dialect"`
}

// DefaultConfig returns the executor's default tunables.
func DefaultConfig() Config {
	return Config{MaxCommaJoinTables: 4, Dialect: sql.Generic}
}

// LoadConfig reads a YAML config file, falling back to DefaultConfig for
// any field the file doesn't set. A missing path is not an error — the
// caller gets defaults, matching go-mysql-server's tolerance of an absent
// optional config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxCommaJoinTables == 0 {
		cfg.MaxCommaJoinTables = 4
	}
	return cfg, nil
}
