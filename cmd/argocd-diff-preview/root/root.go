package root

import (
	"github.com/MakeNowJust/heredoc/v2"

	"github.com/charmbracelet/log"
	"github.com/dag-andersen/argocd-diff-preview/cmd/argocd-diff-preview/root/extract"
	"github.com/dag-andersen/argocd-diff-preview/cmd/argocd-diff-preview/root/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "argocd-diff-preview <command> [flags]",
		Short: "Argo CD diff preview",
		Long:  `Render Argo CD Applications from a branch so they can be diffed before merging.`,
		Example: heredoc.Doc(`
			$ argocd-diff-preview extract --dir ./base --target-branch my-feature --repo org/repo
			$ argocd-diff-preview extract -b my-feature -r org/repo -l team=payments -o apps.yaml
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel := viper.GetString("log-level")
			if logLevel == "" {
				logLevel = "info"
			}

			switch logLevel {
			case "debug":
				log.SetLevel(log.DebugLevel)
			case "info":
				log.SetLevel(log.InfoLevel)
			case "warn":
				log.SetLevel(log.WarnLevel)
			case "error":
				log.SetLevel(log.ErrorLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set the logging level (debug, info, warn, error)")
	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindEnv("log-level", "ARGOCD_DIFF_PREVIEW_LOG_LEVEL", "LOG_LEVEL")

	cmd.AddCommand(extract.NewExtractCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
