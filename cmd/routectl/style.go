// Copyright 2025 The Crema Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"crema.dev/routing/route"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// colorWriter downsamples ANSI sequences to what w supports. Writers that
// are not terminals get plain text.
func colorWriter(w io.Writer) *colorprofile.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}

var visibilityStyles = map[route.Visibility]lipgloss.Style{
	route.Public:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
	route.Private: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
	route.Unset:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// renderEntriesTable writes the path index as a bordered table. width is
// used when w is not a terminal.
func renderEntriesTable(w io.Writer, entries []route.Entry, width int) error {
	rows := make([][]string, 0, len(entries))
	maxPath, maxName := len("Path"), len("Name")
	for _, e := range entries {
		visibility := e.Visibility().String()
		if style, ok := visibilityStyles[e.Visibility()]; ok {
			visibility = style.Render(visibility)
		}
		maxPath = max(maxPath, len(e.Path()))
		maxName = max(maxName, len(e.Name()))
		rows = append(rows, []string{e.Path(), e.Name(), visibility})
	}

	// borders (2) + separators (2) + padding (6) + content
	tableWidth := max(2+2+6+maxPath+maxName+len("Visibility"), width)
	if file, ok := w.(*os.File); ok {
		if termWidth, _, err := term.GetSize(int(file.Fd())); err == nil && termWidth > 0 {
			tableWidth = min(tableWidth, termWidth)
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Path", "Name", "Visibility").
		Rows(rows...).
		Width(tableWidth)

	cw := colorWriter(w)
	_, err := fmt.Fprintln(cw, t.Render())
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the routectl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

			var banner strings.Builder
			for _, line := range figure.NewFigure("routectl", "", false).Slicify() {
				if strings.TrimSpace(line) == "" {
					continue
				}
				banner.WriteString(style.Render(line))
				banner.WriteByte('\n')
			}

			cw := colorWriter(cmd.OutOrStdout())
			_, err := fmt.Fprintf(cw, "%s\nroutectl %s\n", banner.String(), version)
			return err
		},
	}
}
