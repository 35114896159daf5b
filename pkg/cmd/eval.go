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
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/eval"
	"github.com/statutelang/go-statute/pkg/statute/registry"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [flags] statute_file(s)",
	Short: "Evaluate a statute set against the facts known about an entity.",
	Long: `Evaluate a given statute set against the facts known about a single
	entity, read from a YAML facts file.  Each statute produces exactly one of
	three outcomes: a deterministic effect, a deferral to judicial discretion,
	or a void outcome with its reason.`,
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
		// Read entity facts
		entity, err := eval.ReadFactsFile(GetString(cmd, "facts"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Parse source files, or print errors
		statutes := ReadStatuteSet(args)
		// Register statutes, retaining the highest version of each identifier
		reg := registry.NewMemRegistry()
		//
		for _, s := range statutes {
			reg.Register(s)
		}
		// Select statutes to evaluate
		selection := reg.Statutes()
		//
		if id := GetString(cmd, "statute"); id != "" {
			s, ok := reg.Resolve(ast.StatuteID(id))
			//
			if !ok {
				fmt.Printf("unknown statute \"%s\"\n", id)
				os.Exit(2)
			}
			//
			selection = []*ast.Statute{s}
		}
		//
		for _, s := range selection {
			log.Debugf("evaluating statute %s against entity %s", s.ID, entity.ID())
			//
			result := eval.Evaluate(entity, s)
			fmt.Printf("%s: %s\n", s.ID, result.String())
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("facts", "", "YAML file holding the entity facts")
	evalCmd.Flags().String("statute", "", "evaluate only the statute with a given identifier")
	evalCmd.MarkFlagRequired("facts")
}
