package main

import (
	"github.com/spf13/cobra"
)

func newDebugCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "debug",
		Short:  "Inspect client internals",
		Hidden: true,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "metrics",
		Short: "Dump the counters this process recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(a.metrics.CounterSnapshot())
		},
	})
	return cmd
}
