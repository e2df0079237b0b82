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
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"crema.dev/routing/logging"
	"crema.dev/routing/route"
	"crema.dev/routing/shotlog"
	"crema.dev/routing/specfile"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	files         []string
	consulKeys    []string
	logFormat     string
	logLevel      string
	strict        bool
	denyUnmatched bool
	trace         bool

	logger   *slog.Logger
	tracer   trace.Tracer
	span     trace.Span
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "routectl",
		Short: "Inspect, resolve and classify route tables",
		Long: `routectl works on a route table declared in spec files
(YAML, TOML or JSON) or, by default, on the built-in shot log table.

Several -f files are merged in order, later files overriding earlier ones.
--consul-key documents are applied after the files, read from the agent
named by CONSUL_HTTP_ADDR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.initLogger(cmd); err != nil {
				return err
			}
			if err := opts.initTracing(cmd); err != nil {
				return err
			}
			ctx, span := opts.tracer.Start(cmd.Context(), "routectl "+cmd.Name())
			opts.span = span
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			opts.span.End()
			return opts.shutdown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&opts.files, "file", "f", nil, "route spec files, merged in order")
	flags.StringSliceVar(&opts.consulKeys, "consul-key", nil, "Consul KV keys holding YAML route specs, applied after files")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json, text or console (default console on a terminal, json otherwise)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "minimum log level")
	flags.BoolVar(&opts.strict, "strict", false, "fail when two routes share a path")
	flags.BoolVar(&opts.denyUnmatched, "deny-unmatched", false, "classify paths matching no route as protected")
	flags.BoolVar(&opts.trace, "trace", false, "write OpenTelemetry spans to stderr")

	root.AddCommand(
		listCmd(opts),
		resolveCmd(opts),
		classifyCmd(opts),
		exportCmd(opts),
		versionCmd(),
	)
	return root
}

func (o *options) initLogger(cmd *cobra.Command) error {
	name := o.logFormat
	if name == "" {
		name = string(logging.JSONHandler)
		if f, ok := cmd.ErrOrStderr().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			name = string(logging.ConsoleHandler)
		}
	}
	format, err := logging.ParseHandlerType(name)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	o.logger, err = logging.New(
		logging.WithHandlerType(format),
		logging.WithLevel(level),
		logging.WithOutput(cmd.ErrOrStderr()),
		logging.WithServiceName("routectl"),
	)
	return err
}

// load returns the route tree and map selected by the flags.
func (o *options) load(ctx context.Context) (route.Routes, *route.Map, error) {
	log := logging.WithTrace(ctx, o.logger)

	if len(o.files) == 0 && len(o.consulKeys) == 0 && !o.denyUnmatched {
		log.Debug("using built-in route table")
		return shotlog.Routes(), shotlog.Map(), nil
	}

	specs := shotlog.Specs()
	if len(o.files) > 0 || len(o.consulKeys) > 0 {
		sources := make([]specfile.Source, 0, len(o.files)+len(o.consulKeys))
		for _, f := range o.files {
			sources = append(sources, specfile.File(f))
		}
		for _, key := range o.consulKeys {
			src, err := specfile.Consul(key, specfile.TypeYAML, nil)
			if err != nil {
				return nil, nil, err
			}
			sources = append(sources, src)
		}

		var err error
		if specs, err = specfile.LoadSources(ctx, sources...); err != nil {
			return nil, nil, err
		}
	}

	diagnostics := route.WithDiagnostics(route.SlogDiagnostics(log))
	routes := route.Build(specs, diagnostics)

	mapOpts := []route.Option{diagnostics}
	if o.strict {
		mapOpts = append(mapOpts, route.WithStrictPaths())
	}
	if o.denyUnmatched {
		mapOpts = append(mapOpts, route.WithUnmatchedPolicy(route.UnmatchedDeny))
	}

	m, err := route.NewMap(routes, mapOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("index routes: %w", err)
	}

	log.Debug("route table loaded", "files", o.files, "consul_keys", o.consulKeys, "paths", m.Len())
	return routes, m, nil
}
