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
	"github.com/statutelang/go-statute/pkg/statute/constraint"
	"github.com/statutelang/go-statute/pkg/statute/verify"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [flags] statute_file(s)",
	Short: "Statically analyse a statute set for defects.",
	Long: `Statically analyse a given statute set for defects: supersedes
	cycles, references to unknown statutes, statutes whose preconditions can
	never be satisfied, and pairs of statutes producing contradictory effects
	for some admissible entity.  Exits with a non-zero code when any finding
	is reported, such that verification can gate a build.`,
	Run: func(cmd *cobra.Command, args []string) {
		var config verify.Config
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Parse source files, or print errors
		statutes := ReadStatuteSet(args)
		// Configure solver (unless disabled)
		if !GetFlag(cmd, "no-solver") {
			config.Solver = configureSolver(cmd)
		}
		//
		result, err := verify.Verify(cmd.Context(), statutes, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		fmt.Print(verify.FormatReport(result, maxWidth()))
		//
		if !result.Passed {
			os.Exit(1)
		}
	},
}

// Construct the satisfiability backend from the domain bounds and timeout
// given on the command line.
func configureSolver(cmd *cobra.Command) constraint.Solver {
	bounds := constraint.DefaultBounds()
	// Overlay bounds file (if given)
	if filename := GetString(cmd, "bounds"); filename != "" {
		var err error
		//
		if bounds, err = constraint.ReadBoundsFile(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	solver := constraint.NewSolver(bounds)
	//
	if timeout := GetDuration(cmd, "timeout"); timeout != 0 {
		solver = solver.WithTimeout(timeout)
	}
	//
	return solver
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Bool("no-solver", false, "disable satisfiability checking")
	verifyCmd.Flags().String("bounds", "", "YAML file overriding the domain bounds")
	verifyCmd.Flags().Duration("timeout", 0, "limit on each satisfiability check")
}
