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
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] statute_file(s)",
	Short: "Check a set of statute files is well formed.",
	Long: `Check a given set of statute files is well formed.  This covers
	syntax, duplicate statute identifiers, duplicate clauses and validity
	window sanity, but stops short of the deeper analyses performed by
	"verify".`,
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
		// Parse source files, or print errors
		statutes := ReadStatuteSet(args)
		//
		fmt.Printf("checked %d statute(s): ok\n", len(statutes))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
