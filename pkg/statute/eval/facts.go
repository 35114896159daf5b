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
package eval

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"gopkg.in/yaml.v3"
)

// factsFile is the on-disk schema for an entity facts file.
type factsFile struct {
	ID         string         `yaml:"id"`
	Attributes map[string]any `yaml:"attributes"`
}

// ReadFactsFile reads an entity facts file from disk.  See ParseFacts for the
// expected format.
func ReadFactsFile(filename string) (*Facts, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	facts, err := ParseFacts(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return facts, nil
}

// ParseFacts parses a YAML document describing a single entity into an
// evaluation context.  The document carries an optional identifier (a fresh
// one is generated when absent) and a flat attribute map, e.g.
//
//	id: alice
//	attributes:
//	  age: 18
//	  citizen: true
//	  region: EU
//	  date: 2024-11-05
//
// Attribute values must fit the closed value union: integers, booleans,
// dates (YYYY-MM-DD) and strings.  Anything else (nested maps, lists, nulls)
// is rejected, rather than being silently folded into an unknown.
func ParseFacts(bytes []byte) (*Facts, error) {
	var file factsFile
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, err
	}
	//
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	//
	attributes := make(map[string]ast.Value, len(file.Attributes))
	//
	for name, raw := range file.Attributes {
		value, err := coerceValue(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		//
		attributes[name] = value
	}
	//
	return &Facts{file.ID, attributes}, nil
}

// coerceValue maps a raw YAML scalar onto the closed value union.
func coerceValue(raw any) (ast.Value, error) {
	switch v := raw.(type) {
	case bool:
		return ast.Bool(v), nil
	case int:
		return ast.Int(v), nil
	case int64:
		return ast.Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d too large", v)
		}
		//
		return ast.Int(v), nil
	case time.Time:
		// Unquoted YYYY-MM-DD scalars arrive as timestamps.
		return ast.NewDate(v.Year(), v.Month(), v.Day()), nil
	case string:
		// Quoted dates arrive as strings.
		if date, err := ast.ParseDate(v); err == nil {
			return date, nil
		}
		//
		return ast.String(v), nil
	}
	//
	return nil, fmt.Errorf("unsupported value %v", raw)
}
