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
	"strconv"
	"strings"
)

// Choice is one member of a closed enumeration together with the key used
// to label it.
type Choice[T comparable] struct {
	Value T
	Key   string
}

// EnumField selects exactly one member of a fixed, ordered set. The
// selected member is always derived from the getter, never stored.
type EnumField struct {
	Keys   []string
	Index  func() int
	Select func(int)
}

// Enum declares a single-choice binding over choices. The current member
// is found by equality with get(); a value outside the set reports index -1.
func Enum[T comparable](key string, choices []Choice[T], get func() T, set func(T), when ...Predicate) *Binding {
	keys := make([]string, len(choices))
	for i, c := range choices {
		keys[i] = c.Key
	}
	f := &EnumField{
		Keys: keys,
		Index: func() int {
			cur := get()
			for i, c := range choices {
				if c.Value == cur {
					return i
				}
			}
			return -1
		},
		Select: func(i int) { set(choices[i].Value) },
	}
	return New(key, f, when...)
}

func (f *EnumField) Kind() Kind { return KindEnum }

func (f *EnumField) Format() string {
	i := f.Index()
	if i < 0 || i >= len(f.Keys) {
		return ""
	}
	return f.Keys[i]
}

// resolve accepts either a member key or its zero-based position.
func (f *EnumField) resolve(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	for i, k := range f.Keys {
		if strings.EqualFold(k, s) {
			return i, true
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(f.Keys) {
		return i, true
	}
	return 0, false
}

func (f *EnumField) Valid(raw string) bool {
	_, ok := f.resolve(raw)
	return ok
}

func (f *EnumField) apply(raw string) {
	i, _ := f.resolve(raw)
	f.Select(i)
}
