package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darkden-lab/argus/extensions/internal/routing"
)

func newResolveCmd() *cobra.Command {
	var (
		product string
		params  []string
	)

	cmd := &cobra.Command{
		Use:   "resolve [route-name]",
		Short: "Build a route for a product and resolve it to a path",
		Long: `resolve builds a route with the product's route factory and expands it against
the product's route table. An empty route name selects the default resource route.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runResolve(cmd, product, name, params)
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Product (extension) name")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Route param as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func runResolve(cmd *cobra.Command, product, name string, raw []string) error {
	overrides, err := parseParams(raw)
	if err != nil {
		return err
	}

	f, err := routing.NewFactory(routing.Config{Product: product})
	if err != nil {
		return err
	}

	engine, err := loadBundled(cmd.Context())
	if err != nil {
		return err
	}

	route := f.CreateProductRoute(name, overrides, nil)
	path, err := engine.Resolve(route)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", route.Name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", route.Name, path)
	return nil
}

func parseParams(raw []string) (routing.Params, error) {
	params := routing.Params{}
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", kv)
		}
		params[k] = v
	}
	return params, nil
}
