package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

const yamlFilePattern = "**/*.{yaml,yml}"

// FileFilter narrows down the manifest files found under a directory.
type FileFilter struct {
	// Regex is matched against the root directory as given, joined with
	// the relative path of the file.
	Regex *regexp.Regexp
	// Globs are matched against the path relative to the root directory.
	// Later patterns override earlier ones and a ! prefix excludes.
	Globs []string
}

type globRule struct {
	pattern string
	include bool
}

func (f FileFilter) rules() ([]globRule, error) {
	rules := make([]globRule, 0, len(f.Globs))
	for _, p := range f.Globs {
		rule := globRule{pattern: p, include: true}
		if strings.HasPrefix(p, "!") {
			rule = globRule{pattern: strings.TrimPrefix(p, "!"), include: false}
		}
		if !doublestar.ValidatePattern(rule.pattern) {
			return nil, fmt.Errorf("invalid glob pattern '%s'", rule.pattern)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func matchRules(rules []globRule, relPath string) bool {
	included := true
	for _, rule := range rules {
		if rule.include {
			included = false
			break
		}
	}
	for _, rule := range rules {
		if doublestar.MatchUnvalidated(rule.pattern, relPath) {
			included = rule.include
		}
	}
	return included
}

// joinUncleaned appends a slash separated relative path to root without
// cleaning root, so "./base" yields "./base/app.yaml".
func joinUncleaned(root, rel string) string {
	sep := string(filepath.Separator)
	rel = filepath.FromSlash(rel)
	if root == "" {
		return rel
	}
	if strings.HasSuffix(root, sep) || strings.HasSuffix(root, "/") {
		return root + rel
	}
	return root + sep + rel
}

// FindYAMLFiles returns every .yaml/.yml file under root that passes the
// filter, sorted lexicographically.
func FindYAMLFiles(root string, filter FileFilter) ([]string, error) {
	log.Info("Fetching all files in dir", "dir", root)

	rules, err := filter.rules()
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(root), yamlFilePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", root, err)
	}

	var files []string
	for _, match := range matches {
		if !matchRules(rules, match) {
			continue
		}
		path := joinUncleaned(root, match)
		if filter.Regex != nil && !filter.Regex.MatchString(path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	if filter.Regex != nil {
		log.Debug("Found yaml files matching regex", "count", len(files), "regex", filter.Regex.String())
	} else {
		log.Debug("Found yaml files", "count", len(files))
	}

	return files, nil
}
