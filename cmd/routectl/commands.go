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
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"crema.dev/routing/route"
	"crema.dev/routing/specfile"
)

func listCmd(opts *options) *cobra.Command {
	var styled bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every path with its route name and visibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if styled {
				return renderEntriesTable(cmd.OutOrStdout(), m.Entries(), 80)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME\tVISIBILITY")
			for _, e := range m.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Path(), e.Name(), e.Visibility())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&styled, "style", false, "render a bordered table, colored on terminals")
	return cmd
}

func resolveCmd(opts *options) *cobra.Command {
	var (
		query  []string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <route.name> [key=value...]",
		Short: "Build the URL of a named route",
		Example: `  routectl resolve api.shots.detail id=42
  routectl resolve api.shots --query page=2 --query limit=10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			node := routes.ByName(args[0])
			if node == nil {
				return fmt.Errorf("unknown route %q", args[0])
			}

			params := route.Params{}
			for _, kv := range args[1:] {
				key, value, err := splitPair(kv)
				if err != nil {
					return err
				}
				params[key] = value
			}

			values := url.Values{}
			for _, kv := range query {
				key, value, err := splitPair(kv)
				if err != nil {
					return err
				}
				values.Add(key, value)
			}

			var path string
			if strict {
				if path, err = route.ResolveStrict(node, params, values); err != nil {
					return err
				}
			} else {
				path = route.Resolve(node, params, values)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter as key=value, repeatable")
	cmd.Flags().BoolVar(&strict, "require-params", false, "fail when a placeholder has no value")
	return cmd
}

func classifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <path>...",
		Short: "Show the matching route and visibility of request paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			span := trace.SpanFromContext(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tMATCH\tPUBLIC")
			for _, p := range args {
				match := "-"
				if e, ok := m.Lookup(p); ok {
					match = e.Path()
				}
				public := m.IsPublic(p)
				span.AddEvent("classified", trace.WithAttributes(
					attribute.String("request.path", p),
					attribute.String("route.path", match),
					attribute.Bool("route.public", public),
				))
				fmt.Fprintf(w, "%s\t%s\t%t\n", p, match, public)
			}
			return w.Flush()
		},
	}
}

func exportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Encode the path index as yaml, json, toml or msgpack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			data, err := specfile.Export(m, specfile.Type(strings.ToLower(format)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(specfile.TypeYAML), "output format: yaml, json, toml or msgpack")
	return cmd
}

func splitPair(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", kv)
	}
	return key, value, nil
}
