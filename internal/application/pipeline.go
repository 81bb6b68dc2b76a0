package application

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dag-andersen/argocd-diff-preview/internal/manifest"
	"github.com/dag-andersen/argocd-diff-preview/internal/selector"
)

// Options configures a single extraction run.
type Options struct {
	// Directory is scanned recursively for .yaml and .yml files.
	Directory string
	// Branch is written into the targetRevision of matching sources.
	Branch string
	// Repo is matched as a substring of each source repoURL.
	Repo     string
	Filter   manifest.FileFilter
	Selector selector.Selector
}

// Result holds the patched applications and their serialized form.
type Result struct {
	Applications []Application
	Output       string
}

// Run finds, selects, patches and serializes the applications under
// opts.Directory.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log.Debug("Fetching applications",
		"dir", opts.Directory,
		"branch", opts.Branch,
		"selector", opts.Selector.String(),
		"repo", opts.Repo,
	)

	files, err := manifest.FindYAMLFiles(opts.Directory, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find yaml files: %w", err)
	}

	return RunFiles(ctx, files, opts)
}

// RunFiles runs the pipeline over an explicit list of files.
func RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	resources, err := manifest.ReadResources(ctx, files)
	if err != nil {
		return nil, err
	}
	log.Debug("Parsed resources", "count", len(resources), "files", len(files))

	apps := Select(resources, opts.Selector)
	log.Debug("Selected applications", "count", len(apps))

	apps = Patch(apps, opts.Branch, opts.Repo)

	output, err := Serialize(apps)
	if err != nil {
		return nil, err
	}

	return &Result{Applications: apps, Output: output}, nil
}

// GetApplicationsAsString returns the patched applications under
// opts.Directory as a multi-document YAML stream.
func GetApplicationsAsString(ctx context.Context, opts Options) (string, error) {
	result, err := Run(ctx, opts)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}
