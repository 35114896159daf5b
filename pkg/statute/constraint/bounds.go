// Copyright Statutelang Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package constraint

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"gopkg.in/yaml.v3"
)

// Bound gives the inclusive domain of a single integer variable.
type Bound struct {
	// Lo is the least admissible value.
	Lo int64
	// Hi is the greatest admissible value.
	Hi int64
}

// Bounds assigns each integer variable a finite domain, outside which no
// witness is ever sought.  Date domains are measured in days since the Unix
// epoch, like date atoms.
type Bounds map[string]Bound

// DefaultBounds returns the domains assumed in the absence of explicit
// configuration: ages 0..150, incomes 0..1000000000, and dates from
// 1900-01-01 to 2200-12-31.
func DefaultBounds() Bounds {
	return Bounds{
		AGE_VARIABLE:    {Lo: 0, Hi: 150},
		INCOME_VARIABLE: {Lo: 0, Hi: 1_000_000_000},
		DATE_VARIABLE: {
			Lo: ast.NewDate(1900, time.January, 1).Days(),
			Hi: ast.NewDate(2200, time.December, 31).Days(),
		},
	}
}

// Of looks up the domain of a given variable, falling back on the default
// domain when no explicit entry exists.
func (p Bounds) Of(v string) Bound {
	if bound, ok := p[v]; ok {
		return bound
	}
	//
	return DefaultBounds()[v]
}

// boundsFile is the on-disk schema for a domain bounds file.  Endpoints are
// untyped so that date domains can be written as dates.
type boundsFile map[string]struct {
	Lo any `yaml:"lo"`
	Hi any `yaml:"hi"`
}

// ReadBoundsFile reads a domain bounds file from disk.  See ParseBounds for
// the expected format.
func ReadBoundsFile(filename string) (Bounds, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	bounds, err := ParseBounds(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return bounds, nil
}

// ParseBounds parses a YAML document overriding the default domains, e.g.
//
//	age:    {lo: 16, hi: 120}
//	income: {lo: 0, hi: 5000000}
//	date:   {lo: 1950-01-01, hi: 2100-12-31}
//
// Entries overlay the defaults, with omitted endpoints retaining their
// default values.  Variables other than age, income and date are rejected,
// as are empty domains.
func ParseBounds(bytes []byte) (Bounds, error) {
	var file boundsFile
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, err
	}
	//
	bounds := DefaultBounds()
	//
	for name, entry := range file {
		fallback, ok := bounds[name]
		if !ok {
			return nil, fmt.Errorf("unknown variable %s", name)
		}
		//
		lo, err := coerceBound(entry.Lo, fallback.Lo)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		//
		hi, err := coerceBound(entry.Hi, fallback.Hi)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		//
		if lo > hi {
			return nil, fmt.Errorf("variable %s: empty domain", name)
		}
		//
		bounds[name] = Bound{Lo: lo, Hi: hi}
	}
	//
	return bounds, nil
}

// coerceBound maps a raw YAML scalar onto a domain endpoint, with dates
// measured in days.
func coerceBound(raw any, fallback int64) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return fallback, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("bound %d too large", v)
		}
		//
		return int64(v), nil
	case time.Time:
		// Unquoted YYYY-MM-DD scalars arrive as timestamps.
		return ast.NewDate(v.Year(), v.Month(), v.Day()).Days(), nil
	case string:
		date, err := ast.ParseDate(v)
		if err != nil {
			return 0, fmt.Errorf("malformed bound %q", v)
		}
		//
		return date.Days(), nil
	}
	//
	return 0, fmt.Errorf("unsupported bound %v", raw)
}
