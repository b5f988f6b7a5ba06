package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"code-darpan/internal/config"
	"code-darpan/internal/output"
)

// app carries state shared by every subcommand.
type app struct {
	cfgFile string
	noColor bool
	cfg     *config.Config
}

func buildRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "code-darpan",
		Short: "Score GitHub repositories and suggest improvements",
		Long: `code-darpan inspects a public GitHub repository, scores it against common
project conventions, and produces a summary, a roadmap and a developer persona.

Usage modes:
  code-darpan serve                 Run the HTTP API (POST /analyze)
  code-darpan analyze <github-url>  Analyze one repository from the terminal`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := configureLogger(cfg.LogLevel); err != nil {
				return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
			}
			if a.noColor {
				output.SetNoColor(true)
			}
			a.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newServeCommand(a), newAnalyzeCommand(a))
	return cmd
}
