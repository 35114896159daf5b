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
package verify

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	passStyle    = color.New(color.FgGreen, color.Bold)
	failStyle    = color.New(color.FgRed, color.Bold)
	codeStyle    = color.New(color.FgYellow, color.Bold)
	statuteStyle = color.New(color.FgCyan, color.Bold)
	witnessStyle = color.New(color.FgBlue)
)

// witnessIndent prefixes witness lines within a finding block.
const witnessIndent = "    witness: "

// FormatReport renders a verification result for the console, one block per
// finding, e.g.
//
//	contradiction: vote_1, vote_2
//	    vote_1 grants "voting rights" whilst vote_2 prohibits it
//	    witness: age = 18, citizen = true
//
// Witness assignments wrap to the given width (with zero meaning the
// conventional eighty columns).  Colour is applied subject to the global
// colour settings.
func FormatReport(result Result, width uint) string {
	if width == 0 {
		width = 80
	}
	//
	var builder strings.Builder
	//
	for _, finding := range result.Findings {
		builder.WriteString(formatFinding(finding, width))
	}
	//
	builder.WriteString(formatSummary(result))
	//
	return builder.String()
}

func formatFinding(finding Finding, width uint) string {
	var builder strings.Builder
	//
	builder.WriteString(codeStyle.Sprint(finding.Code))
	builder.WriteString(": ")
	builder.WriteString(statuteStyle.Sprint(joinStatutes(finding.Statutes)))
	builder.WriteString("\n    ")
	builder.WriteString(finding.Message)
	//
	if finding.Approximate {
		builder.WriteString(" (approximate)")
	}
	//
	builder.WriteString("\n")
	//
	if len(finding.Witness) != 0 {
		available := int(width) - len(witnessIndent)
		if available < 20 {
			available = 20
		}
		//
		lines := wrapWitness(finding.Witness.String(), available)
		builder.WriteString(witnessIndent + witnessStyle.Sprint(lines[0]) + "\n")
		//
		for _, line := range lines[1:] {
			builder.WriteString(strings.Repeat(" ", len(witnessIndent)))
			builder.WriteString(witnessStyle.Sprint(line) + "\n")
		}
	}
	//
	return builder.String()
}

func formatSummary(result Result) string {
	if result.Passed {
		return passStyle.Sprint("ok") + "\n"
	}
	//
	message := fmt.Sprintf("%d findings", len(result.Findings))
	//
	if len(result.Findings) == 1 {
		message = "1 finding"
	}
	//
	return failStyle.Sprint(message) + "\n"
}

// wrapWitness lays witness assignments out in lines fitting a given width,
// breaking between assignments only.
func wrapWitness(witness string, width int) []string {
	var (
		lines []string
		line  string
	)
	//
	for _, part := range strings.Split(witness, ", ") {
		switch {
		case line == "":
			line = part
		case len(line)+len(part)+2 <= width:
			line += ", " + part
		default:
			lines = append(lines, line)
			line = part
		}
	}
	//
	return append(lines, line)
}
