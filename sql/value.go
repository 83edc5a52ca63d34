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
	"fmt"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// KindNull marks the SQL NULL.
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindBytes
)

// Value is the tagged sum every expression evaluates to: Null, Bool, Int,
// Float, Text or Bytes.
type Value struct {
	kind  ValueKind
	b     bool
	i     int64
	f     float64
	s     string
	bytes []byte
}

// Null is the SQL NULL value.
var Null = Value{kind: KindNull}

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt wraps an int64.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat wraps a float64.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewText wraps a string.
func NewText(s string) Value { return Value{kind: KindText, s: s} }

// NewBytes wraps a byte slice.
func NewBytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Kind returns the tag of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is the SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the wrapped bool. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the wrapped int64. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the wrapped float64. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the wrapped string. Only meaningful when Kind() == KindText.
func (v Value) Text() string { return v.s }

// Bytes returns the wrapped byte slice. Only meaningful when Kind() == KindBytes.
func (v Value) Bytes() []byte { return v.bytes }

// IsNumeric reports whether the value is an Int or a Float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// AsFloat64 coerces a numeric value to float64. Only valid for Int/Float.
func (v Value) AsFloat64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Raw returns the value boxed as an interface{}, used for hashing, loose
// equality coercion (via spf13/cast) and printing.
func (v Value) Raw() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBytes:
		return v.bytes
	default:
		return nil
	}
}

// String renders the value for diagnostics and for the || concat operator's
// stringified operand rule.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%v", v.f)
	case KindText:
		return v.s
	case KindBytes:
		return string(v.bytes)
	default:
		return ""
	}
}

// FromRaw wraps a Go native value (as produced by a table source row) into
// a Value. Used at the TableSource boundary.
func FromRaw(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(x)
	case int:
		return NewInt(int64(x))
	case int32:
		return NewInt(int64(x))
	case int64:
		return NewInt(x)
	case float32:
		return NewFloat(float64(x))
	case float64:
		return NewFloat(x)
	case string:
		return NewText(x)
	case []byte:
		return NewBytes(x)
	case Value:
		return x
	default:
		return NewText(fmt.Sprintf("%v", x))
	}
}
