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
package ast

import (
	"cmp"
	"strconv"
	"time"
)

// Value represents a single fact about an entity, as supplied by an
// evaluation context.  Values form a small closed union of the primitive
// kinds a statute can talk about, which keeps the evaluator exhaustive and
// panic-free (rather than working over untyped attribute maps).
type Value interface {
	// String returns a human-readable rendition of this value.
	String() string
	// isValue seals the union.
	isValue()
}

// Int is an integer-valued fact, such as an age or an income.
type Int int64

func (p Int) isValue() {}

func (p Int) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// Bool is a boolean-valued fact, such as holding citizenship.
type Bool bool

func (p Bool) isValue() {}

func (p Bool) String() string {
	return strconv.FormatBool(bool(p))
}

// String is a textual fact, such as a region of residence.
type String string

func (p String) isValue() {}

func (p String) String() string {
	return string(p)
}

const secondsPerDay = 86400

// Date represents a calendar date as a count of days since the Unix epoch.
// Encoding dates this way reduces date comparison, and constraint encoding
// over dates, to integer arithmetic.
type Date struct {
	days int64
}

// NewDate constructs a date from a given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Unix() / secondsPerDay}
}

// FromDays reconstructs a date from its day count, e.g. as extracted from a
// solver model.
func FromDays(days int64) Date {
	return Date{days}
}

// ParseDate parses a date literal of the form YYYY-MM-DD, rejecting
// out-of-range months and days.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return Date{}, err
	}
	//
	return Date{t.Unix() / secondsPerDay}, nil
}

func (p Date) isValue() {}

// Days returns the number of days between this date and the Unix epoch.
func (p Date) Days() int64 {
	return p.days
}

// Compare returns a negative, zero or positive number depending on whether
// this date falls before, on or after a given date.
func (p Date) Compare(other Date) int {
	return cmp.Compare(p.days, other.days)
}

// String returns this date in YYYY-MM-DD form.
func (p Date) String() string {
	return time.Unix(p.days*secondsPerDay, 0).UTC().Format("2006-01-02")
}
