/**
 * Copyright 2025 Advanced Micro Devices, Inc.  All rights reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
**/

package binding

import (
	"math"
	"strconv"
	"strings"
)

// IntField is an integer text field with inclusive bounds.
type IntField struct {
	Get      func() int
	Set      func(int)
	Min, Max int
}

// Int declares an integer binding bounded to [min, max].
func Int(key string, get func() int, set func(int), min, max int, when ...Predicate) *Binding {
	return New(key, &IntField{Get: get, Set: set, Min: min, Max: max}, when...)
}

func (f *IntField) Kind() Kind { return KindInt }

func (f *IntField) Format() string { return strconv.Itoa(f.Get()) }

func (f *IntField) parse(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, v >= f.Min && v <= f.Max
}

func (f *IntField) Valid(raw string) bool {
	_, ok := f.parse(raw)
	return ok
}

func (f *IntField) apply(raw string) {
	v, _ := f.parse(raw)
	f.Set(v)
}

// FloatField is a continuous text field with inclusive bounds.
//
// Raw text must look like a non-negative decimal before the bounds are
// consulted, so a field whose Min is negative still cannot be set below
// zero from text input. Saved rule files rely on that behaviour.
type FloatField struct {
	Get      func() float64
	Set      func(float64)
	Min, Max float64
	// Integer displays the value truncated to an integer.
	Integer bool
	// Decimals caps the displayed fraction digits; negative means shortest.
	Decimals int
}

// FloatOption configures a float binding.
type FloatOption func(*floatOpts)

type floatOpts struct {
	field *FloatField
	when  []Predicate
}

// Range sets inclusive bounds. The default is [0, MaxFloat32].
func Range(min, max float64) FloatOption {
	return func(o *floatOpts) {
		o.field.Min = min
		o.field.Max = max
	}
}

// DisplayInteger shows the stored value truncated to an integer.
func DisplayInteger() FloatOption {
	return func(o *floatOpts) { o.field.Integer = true }
}

// Decimals caps the fraction digits shown for the value.
func Decimals(n int) FloatOption {
	return func(o *floatOpts) { o.field.Decimals = n }
}

// When adds enablement predicates.
func When(preds ...Predicate) FloatOption {
	return func(o *floatOpts) { o.when = append(o.when, preds...) }
}

// Float declares a continuous binding.
func Float(key string, get func() float64, set func(float64), opts ...FloatOption) *Binding {
	o := floatOpts{field: &FloatField{Get: get, Set: set, Max: math.MaxFloat32, Decimals: -1}}
	for _, opt := range opts {
		opt(&o)
	}
	return New(key, o.field, o.when...)
}

func (f *FloatField) Kind() Kind { return KindFloat }

func (f *FloatField) Format() string {
	v := f.Get()
	if f.Integer {
		return strconv.Itoa(int(v))
	}
	return FormatNumber(v, f.Decimals)
}

func (f *FloatField) parse(raw string) (float64, bool) {
	if !CanParsePositiveFloat(raw) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, v >= f.Min && v <= f.Max
}

func (f *FloatField) Valid(raw string) bool {
	_, ok := f.parse(raw)
	return ok
}

func (f *FloatField) apply(raw string) {
	v, _ := f.parse(raw)
	f.Set(v)
}

// CanParsePositiveFloat reports whether raw is a plain decimal made of
// digits and at most one dot. Signs and exponents are rejected.
func CanParsePositiveFloat(raw string) bool {
	s := strings.TrimSpace(raw)
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// FormatNumber renders v without trailing zeros. decimals < 0 selects the
// shortest text that reads back to the same float32.
func FormatNumber(v float64, decimals int) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	if decimals < 0 {
		return strconv.FormatFloat(v, 'f', -1, 32)
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
