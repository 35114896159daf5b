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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/statutelang/go-statute/pkg/statute"
	"github.com/statutelang/go-statute/pkg/util/source"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] statute_file(s)",
	Short: "Format statute files into their canonical form.",
	Long: `Format a given set of statute files into their canonical form, in
	which metadata clauses appear in a fixed order and brackets appear exactly
	where precedence requires them.  Reparsing a formatted file yields a
	structurally identical statute set.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		write := GetFlag(cmd, "write")
		// Format each file in turn, since in-place rewriting is per file.
		for _, filename := range args {
			formatSourceFile(filename, write)
		}
	},
}

// Format a single source file, either rewriting it in place or printing the
// result to stdout.
func formatSourceFile(filename string, write bool) {
	bytes, err := os.ReadFile(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	document, _, errors := statute.ParseSourceFile(source.NewSourceFile(filename, bytes))
	// Check for errors
	if len(errors) != 0 {
		// Report errors
		for _, err := range errors {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(4)
	}
	//
	text := document.String()
	//
	if write {
		log.Debugf("rewriting source file %s", filename)
		//
		if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
	} else {
		fmt.Print(text)
	}
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
}
