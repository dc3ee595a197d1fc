/*
Command surfattach evaluates attachment scenes.

Usage:

	surfattach eval scene.yaml [--trace-level debug|info|error]
	surfattach version

A scene file names a reference surface, an optional placement configuration
and the (u,v) requests. For every request, one line

	index tx ty tz rx ry rz

is printed, sorted by index, with rotations in degrees.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// traceKeys are the tracers of all packages of the module.
var traceKeys = []string{
	"surfattach",
	"surfattach.surface",
	"surfattach.arclen",
	"surfattach.attach",
	"surfattach.polygon",
	"surfattach.node",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "surfattach",
		Short: "Place attachments on parametric surfaces",
		Long: `surfattach places attachments on parametric surfaces, either by
surface parameter, by fraction of arc length, or by absolute arc length,
and prints their translation and rotation.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("trace-level", "error", "Trace level: debug, info or error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("trace-level")
		return setTraceLevel(name)
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("surfattach v%s\n", version)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "eval [scene.yaml]",
		Short: "Evaluate a scene file",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	sc, err := loadScene(f)
	if err != nil {
		return err
	}
	return evaluate(sc, cmd.OutOrStdout())
}

// traceSelector hands out one tracer per key, created by adapter on first
// use.
type traceSelector struct {
	mu      sync.Mutex
	adapter tracing.Adapter
	tracers map[string]tracing.Trace
}

func (sel *traceSelector) Select(key string) tracing.Trace {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	t, ok := sel.tracers[key]
	if !ok {
		t = sel.adapter()
		sel.tracers[key] = t
	}
	return t
}

var selector = &traceSelector{
	adapter: gologadapter.GetAdapter(),
	tracers: make(map[string]tracing.Trace),
}

// setTraceLevel routes tracing of all packages to the Go logger, at the
// level named by name.
func setTraceLevel(name string) error {
	switch strings.ToLower(name) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("unknown trace level %q", name)
	}
	tracing.SetTraceSelector(selector)
	level := tracing.TraceLevelFromString(name)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
