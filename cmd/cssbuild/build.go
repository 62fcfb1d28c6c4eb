package main

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate CSS for the classes used in content files",
	Long: `Scan content files for class names and write the generated CSS.
Without --input the bundled framework stylesheet is compiled.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

// addBuildFlags registers the flags shared by build and watch.
// Defaults live in buildBuildConfig so config file values are not shadowed.
func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "Input stylesheet")
	f.StringP("output", "o", "", "Output file, - for stdout (default -)")
	f.StringSliceP("content", "c", nil, "Glob patterns of files to scan (default **/*.html, **/*.templ)")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildBuildConfig()

	s, err := newSession(config, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.submit()
	if err != nil {
		return err
	}

	result, err := s.finish(cmd.Context(), p)
	if err != nil {
		return err
	}
	s.printStatistics()

	if result.Err != nil {
		return result.Err
	}
	return nil
}
