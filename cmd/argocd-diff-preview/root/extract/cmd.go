package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/dag-andersen/argocd-diff-preview/internal/application"
	"github.com/dag-andersen/argocd-diff-preview/internal/manifest"
	"github.com/dag-andersen/argocd-diff-preview/internal/selector"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewExtractCmd creates a new extract command
func NewExtractCmd() *cobra.Command {
	var filePatterns []string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract Argo CD applications and point them at a branch",
		Long: heredoc.Doc(`
			Find every Argo CD Application and ApplicationSet in a directory, select them by
			label, and rewrite them so they render the given branch on the local cluster.
			The result is written as a multi-document YAML stream.
		`),
		Example: heredoc.Doc(`
			# Extract all applications under ./base pointing at my-feature
			$ argocd-diff-preview extract --dir ./base --target-branch my-feature --repo org/repo

			# Only applications labelled team=payments that are not in staging
			$ argocd-diff-preview extract -b my-feature -r org/repo -l "team=payments,env!=staging"

			# Only files under apps/, excluding tests, written to a file
			$ argocd-diff-preview extract -b my-feature -r org/repo -f "apps/**" -f "!**/test/**" -o apps.yaml
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromConfig(filePatterns)
			if err != nil {
				return err
			}

			result, err := application.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), viper.GetString("output"), result.Output); err != nil {
				return err
			}

			if !viper.GetBool("quiet") {
				printResults(cmd.ErrOrStderr(), result.Applications)
			}
			return nil
		},
	}

	cmd.Flags().StringP("dir", "d", ".", "Directory to search for Application manifests")
	cmd.Flags().StringP("target-branch", "b", "", "Branch the applications should render (required)")
	cmd.Flags().StringP("repo", "r", "", "Repository identifier matched against source repoURLs, e.g. org/repo (required)")
	cmd.Flags().String("file-regex", "", "Only use files whose path matches this regular expression")
	cmd.Flags().StringP("selector", "l", "", "Label selector to filter applications on (=, == and != are supported)")
	cmd.Flags().StringP("output", "o", "", "Write the applications to this file instead of stdout")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print a summary of the extracted applications")
	cmd.Flags().StringArrayVarP(&filePatterns, "file", "f", nil, "Glob pattern relative to --dir (can be specified multiple times, prefix with ! to exclude)")

	for _, name := range []string{"dir", "target-branch", "repo", "file-regex", "selector", "output", "quiet"} {
		viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	viper.BindEnv("target-branch", "ARGOCD_DIFF_PREVIEW_TARGET_BRANCH", "TARGET_BRANCH")
	viper.BindEnv("repo", "ARGOCD_DIFF_PREVIEW_REPO", "REPO")
	viper.BindEnv("file-regex", "ARGOCD_DIFF_PREVIEW_FILE_REGEX", "FILE_REGEX")
	viper.BindEnv("selector", "ARGOCD_DIFF_PREVIEW_SELECTOR", "SELECTOR")

	return cmd
}

func optionsFromConfig(filePatterns []string) (application.Options, error) {
	opts := application.Options{
		Directory: viper.GetString("dir"),
		Branch:    viper.GetString("target-branch"),
		Repo:      viper.GetString("repo"),
		Filter:    manifest.FileFilter{Globs: filePatterns},
	}

	if opts.Branch == "" {
		return opts, fmt.Errorf("target branch is required, set --target-branch or TARGET_BRANCH")
	}
	if opts.Repo == "" {
		return opts, fmt.Errorf("repo is required, set --repo or REPO")
	}
	if opts.Directory == "" {
		opts.Directory = "."
	}

	if raw := viper.GetString("file-regex"); raw != "" {
		re, err := regexp.Compile(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid file regex %q: %w", raw, err)
		}
		opts.Filter.Regex = re
	}

	sel, err := selector.Parse(viper.GetString("selector"))
	if err != nil {
		return opts, err
	}
	opts.Selector = sel

	return opts, nil
}

func writeOutput(stdout io.Writer, path, output string) error {
	if path == "" {
		_, err := io.WriteString(stdout, output)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info("Wrote applications", "file", path)
	return nil
}

func printResults(w io.Writer, apps []application.Application) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.Faint)

	fmt.Fprintln(w)
	for _, app := range apps {
		green.Fprint(w, "✓ ")
		fmt.Fprintf(w, "%s/", app.Kind)
		cyan.Fprintf(w, "%s ", app.Name())
		dim.Fprintf(w, "(%s)\n", app.FileName)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Extracted %d applications\n", len(apps))
}
