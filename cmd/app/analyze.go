package main

import (
	"os"

	"github.com/spf13/cobra"

	"code-darpan/internal/adapter/insight"
	"code-darpan/internal/domain"
	"code-darpan/internal/output"
	"code-darpan/internal/service"
)

// BackupModeNotice is printed to stderr when the summary is the fallback text.
const BackupModeNotice = "ℹ️ summary generated in backup mode; configure an LLM credential for a real analysis"

func newAnalyzeCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <github-url>",
		Short: "Analyze one repository and print the report",
		Example: `  code-darpan analyze https://github.com/spf13/cobra
  code-darpan analyze github.com/spf13/cobra --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer(a.cfg)
			if err != nil {
				return err
			}
			defer closeResources(container)

			var svc *service.AnalysisService
			if err := container.Invoke(func(s *service.AnalysisService) { svc = s }); err != nil {
				return err
			}

			report, err := svc.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if report.Summary == insight.FallbackSummary {
				output.RenderMuted(cmd.ErrOrStderr(), BackupModeNotice)
			}

			out := cmd.OutOrStdout()
			if asJSON || !isTerminalWriter(out) {
				return output.WriteJSON(out, report)
			}
			ref, _ := domain.ParseRepoURL(args[0])
			return output.RenderReport(out, ref.FullName(), report)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func isTerminalWriter(w any) bool {
	f, ok := w.(*os.File)
	return ok && output.IsTerminal(f)
}
