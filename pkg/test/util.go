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
package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/statutelang/go-statute/pkg/statute"
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/eval"
	"github.com/statutelang/go-statute/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the statute test files (stat) and the corresponding entity facts
// (yaml) are found.
const TestDir = "../../testdata"

// ParseStatuteFiles reads and parses one or more statute files (given without
// their extension) into a single statute set, failing the test on any syntax
// error.
func ParseStatuteFiles(t *testing.T, tests ...string) []*ast.Statute {
	t.Helper()
	//
	srcfiles := make([]*source.File, len(tests))
	//
	for i, test := range tests {
		filename := fmt.Sprintf("%s/%s.stat", TestDir, test)
		//
		bytes, err := os.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		//
		srcfiles[i] = source.NewSourceFile(filename, bytes)
	}
	//
	statutes, _, errs := statute.ParseSourceFiles(srcfiles)
	//
	for _, err := range errs {
		t.Error(err.Error())
	}
	//
	if t.Failed() {
		t.FailNow()
	}
	//
	return statutes
}

// ReadEntityFacts reads the facts file for a given entity (given without its
// extension), failing the test when the file is missing or malformed.
func ReadEntityFacts(t *testing.T, test string) *eval.Facts {
	t.Helper()
	//
	entity, err := eval.ReadFactsFile(fmt.Sprintf("%s/facts/%s.yaml", TestDir, test))
	if err != nil {
		t.Fatal(err)
	}
	//
	return entity
}
