package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	server  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "argus-ext",
		Short: "Inspect the extensions bundled with the Argus dashboard",
		Long: `argus-ext loads the bundled dashboard extensions in-process and prints what they
register: route tables, navigation products and resolved paths.
With --server, the route table is read from a running dashboard instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&server, "server", "", "Dashboard server URL (e.g. http://localhost:8080)")

	rootCmd.AddCommand(
		newRoutesCmd(),
		newProductsCmd(),
		newResolveCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
