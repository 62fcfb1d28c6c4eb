package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssbuild.yaml config file",
	Long:  `Create a .cssbuild.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssbuild.yaml"); err == nil && !force {
			return fmt.Errorf(".cssbuild.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssbuild.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .cssbuild.yaml")
		return nil
	},
}

const defaultConfig = `# cssbuild configuration

# Shared settings
verbose: false
color: false
base: /

# Build settings
build:
  input: ""                # empty compiles the bundled framework stylesheet
  output: dist/app.css     # - writes to stdout
  content:
    - "**/*.html"
    - "**/*.templ"

# Watch settings
watch:
  debounce: 100ms
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
