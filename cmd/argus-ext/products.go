package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the navigation products registered by each extension",
		RunE:  runProducts,
	}
}

func runProducts(cmd *cobra.Command, args []string) error {
	engine, err := loadBundled(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, info := range engine.ListAll() {
		fmt.Fprintf(out, "%s %s\n", info.ID, info.Metadata.Version)
		for _, p := range info.Navigation.Products {
			fmt.Fprintf(out, "  product      store=%s icon=%s explorer=%t -> %s\n", p.InStore, p.Icon, p.InExplorer, p.To.Name)
		}
		for _, vt := range info.Navigation.VirtualTypes {
			fmt.Fprintf(out, "  virtualType  %s group=%s weight=%d overview=%t -> %s\n", vt.Name, vt.Group, vt.Weight, vt.Overview, vt.Route.Name)
		}
		fmt.Fprintf(out, "  basicTypes   %s\n", strings.Join(info.Navigation.BasicTypes, ", "))
	}
	return nil
}
