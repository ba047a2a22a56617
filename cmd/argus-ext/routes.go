package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkden-lab/argus/extensions/internal/routing"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table of the enabled extensions",
		RunE:  runRoutes,
	}
}

func runRoutes(cmd *cobra.Command, args []string) error {
	var entries []routing.Entry
	if server != "" {
		fetched, err := fetchRoutes(cmd.Context(), server)
		if err != nil {
			return err
		}
		entries = fetched
	} else {
		engine, err := loadBundled(cmd.Context())
		if err != nil {
			return err
		}
		entries = engine.RouteTable()
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}

	fmt.Fprintf(out, "  %-36s  %-40s  %s\n", "NAME", "PATH", "COMPONENT")
	fmt.Fprintf(out, "  %-36s  %-40s  %s\n", "----", "----", "---------")
	for _, e := range entries {
		fmt.Fprintf(out, "  %-36s  %-40s  %s\n", e.Name, e.Path, e.Component)
	}
	return nil
}
