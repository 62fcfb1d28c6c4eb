package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"github.com/yacobolo/cssbuild/internal/assets"
	"github.com/yacobolo/cssbuild/internal/report"
)

var importsCmd = &cobra.Command{
	Use:   "imports [ID...]",
	Short: "List the stylesheet identifiers that can be imported",
	Long: `Print the bundled stylesheets and the @import identifiers resolving to them.
With arguments, report how each identifier resolves.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		useColors := report.ShouldUseColors(getBoolWithFallback("color", "color", false))
		resolver := assets.NewResolver(nil)

		if len(args) > 0 {
			return printResolution(cmd.OutOrStdout(), resolver, args, useColors)
		}
		_, err := io.WriteString(cmd.OutOrStdout(), importTree(resolver))
		return err
	},
}

// importTree renders every bundled file with its identifiers
func importTree(resolver *assets.Resolver) string {
	tree := treeprint.NewWithRoot("virtual:tailwindcss")
	ids := resolver.IDs()
	for _, file := range resolver.Files() {
		branch := tree.AddBranch(file)
		for _, id := range ids[file] {
			branch.AddNode(fmt.Sprintf("@import %q", id))
		}
	}
	return tree.String()
}

// printResolution reports where each id resolves. Any unsupported id is an error.
func printResolution(w io.Writer, resolver *assets.Resolver, ids []string, useColors bool) error {
	unsupported := 0
	for _, id := range ids {
		file, ok := resolver.Lookup(id)
		if !ok {
			unsupported++
			fmt.Fprintf(w, "%s %s\n", id, report.RenderStyle(report.StyleRed, "unsupported", useColors))
			continue
		}
		fmt.Fprintf(w, "%s -> %s\n", id, report.RenderStyle(report.StyleCyan, assets.VirtualPath(file), useColors))
	}

	if unsupported > 0 {
		return fmt.Errorf("%d unsupported import(s)", unsupported)
	}
	return nil
}
