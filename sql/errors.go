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

package sql

import (
	"github.com/pkg/errors"
	errkind "gopkg.in/src-d/go-errors.v1"
)

// Error kinds, one errkind.Kind per condition, mirroring go-mysql-server's
// convention of a package-level errkind.Kind variable per error rather
// than a bespoke concrete error type.
var (
	// Parse/bind.
	ErrUnboundPlaceholder = errkind.NewKind("unbound placeholder reached the evaluator: %s")
	ErrUnknownIdentifier  = errkind.NewKind("unknown identifier: %s")
	ErrWildcardInExpr     = errkind.NewKind("wildcard %q is not valid in an expression context")

	// Semantic.
	ErrUnknownFunction           = errkind.NewKind("unknown function: %s")
	ErrUnsupportedOperator       = errkind.NewKind("unsupported operator: %s")
	ErrCommaJoinTooManyTables    = errkind.NewKind("comma-join of %d tables exceeds the maximum of %d")
	ErrScalarSubqueryCardinality = errkind.NewKind("scalar subquery returned more than one row or column")
	ErrSetOpArityMismatch        = errkind.NewKind("set operation operands have mismatched column arity: %d vs %d")

	// Mutation / write planner.
	ErrDeleteWithoutWhere    = errkind.NewKind("DELETE without a WHERE clause is not allowed through the write planner")
	ErrScopeViolation        = errkind.NewKind("row violates the scope filter of the partial query")
	ErrSingleTableConstraint = errkind.NewKind("a MutablePartialQuery's base may not contain a JOIN or UNION")
	ErrRowValidationFailed   = errkind.NewKind("row failed validation: %s")

	// Backend.
	ErrBackend = errkind.NewKind("backend error: %s")

	// Timeout.
	ErrQueryTimeout = errkind.NewKind("query timeout: cancellation tripped during iteration")
)

// WrapBackend wraps an opaque error returned by a concrete table source,
// preserving its stack (github.com/pkg/errors.Wrap) and attaching the
// offending SQL fragment when one is available.
func WrapBackend(err error, fragment string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, "table source")
	if fragment != "" {
		return ErrBackend.New(fragment + ": " + wrapped.Error())
	}
	return ErrBackend.New(wrapped.Error())
}
