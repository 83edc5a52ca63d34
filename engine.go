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

// Package fedsql ties a caller-supplied table registry to the executor
// and exposes the single entry point driving a SelectStatement to
// completion, the same role go-mysql-server's top-level package plays
// over its analyzer/catalog/rowexec stack.
package fedsql

import (
	"context"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/executor"
)

// Config configures an Engine. Embedding executor.Config keeps the one
// set of tunables (comma-join cap, query timeout) in a single place
// rather than duplicating fields here.
type Config struct {
	executor.Config
}

// DefaultConfig returns the engine's default tunables.
func DefaultConfig() Config {
	return Config{Config: executor.DefaultConfig()}
}

// LoadConfig reads a YAML config file, falling back to DefaultConfig when
// path is empty or the file doesn't exist.
func LoadConfig(path string) (Config, error) {
	cfg, err := executor.LoadConfig(path)
	return Config{Config: cfg}, err
}

// Engine wires a table registry to the executor. One Engine is typically
// long-lived per process; each Query call is independent, since the
// executor carries no state across statements — a query's cooperative
// single-threaded execution scopes only to that statement, not across
// statements on the same Engine.
type Engine struct {
	exec *executor.Executor
}

// New builds an Engine over registry, a mapping of logical table names to
// table sources.
func New(registry sql.Registry, cfg Config) *Engine {
	return &Engine{exec: executor.NewExecutor(registry, cfg.Config)}
}

// Query runs stmt to completion, returning its output schema and
// materialized row set.
func (e *Engine) Query(ctx context.Context, stmt *sql.SelectStatement) (sql.Schema, []sql.Row, error) {
	return e.exec.Query(ctx, stmt)
}
