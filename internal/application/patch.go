package application

import (
	"strings"

	"github.com/charmbracelet/log"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const (
	argoCDNamespace      = "argocd"
	metadataKey          = "metadata"
	defaultProject       = "default"
	inClusterName        = "in-cluster"
	targetRevisionKey    = "targetRevision"
	helmChartKey         = "chart"
	repoURLKey           = "repoURL"
	syncPolicyKey        = "syncPolicy"
	projectKey           = "project"
	destinationKey       = "destination"
	sourceKey            = "source"
	sourcesKey           = "sources"
	destinationNameKey   = "name"
	destinationServerKey = "server"
)

// Patch rewrites the applications so they can be rendered against branch.
// Applications whose spec is not a mapping are dropped.
func Patch(apps []Application, branch, repo string) []Application {
	log.Info("Patching applications for branch", "branch", branch)

	patched := make([]Application, 0, len(apps))
	for _, app := range apps {
		if PatchApplication(app, branch, repo) {
			patched = append(patched, app)
		}
	}

	log.Info("Patched Argo CD Application[Sets]", "count", len(patched), "branch", branch)
	return patched
}

// PatchApplication patches a single application in place. It returns false
// when the spec could not be resolved and the application must be dropped.
// The namespace is rewritten either way.
func PatchApplication(app Application, branch, repo string) bool {
	setNamespace(app)

	spec, ok := specOf(app)
	if !ok {
		log.Debug("Dropping application without a spec", "name", app.Name(), "kind", app.Kind, "file", app.FileName)
		return false
	}

	removeSyncPolicy(spec)
	setProjectToDefault(spec)
	pointDestinationToInCluster(spec)
	redirectSources(spec, branch, repo)

	log.Debug("Processed application", "name", app.Name(), "file", app.FileName)
	return true
}

// setNamespace moves the application into the Argo CD namespace. A null
// metadata field is replaced with a mapping first.
func setNamespace(app Application) {
	switch metadata := app.Object.Object[metadataKey].(type) {
	case map[string]any:
	case nil:
		app.Object.Object[metadataKey] = map[string]any{}
	default:
		log.Warn("Metadata is not a mapping, leaving namespace unchanged", "file", app.FileName, "metadata", metadata)
		return
	}
	app.Object.SetNamespace(argoCDNamespace)
}

func specOf(app Application) (map[string]any, bool) {
	field, found, err := unstructured.NestedFieldNoCopy(app.Object.Object, app.Kind.SpecPath()...)
	if err != nil || !found {
		return nil, false
	}
	spec, ok := field.(map[string]any)
	return spec, ok
}

func removeSyncPolicy(spec map[string]any) {
	delete(spec, syncPolicyKey)
}

func setProjectToDefault(spec map[string]any) {
	spec[projectKey] = defaultProject
}

func pointDestinationToInCluster(spec map[string]any) {
	dest, ok := spec[destinationKey]
	if !ok {
		return
	}
	switch d := dest.(type) {
	case map[string]any:
		d[destinationNameKey] = inClusterName
		delete(d, destinationServerKey)
	case nil:
		spec[destinationKey] = map[string]any{destinationNameKey: inClusterName}
	default:
		log.Warn("Destination is not a mapping, leaving it unchanged", "destination", d)
	}
}

// redirectSources points spec.source, or when absent every entry of
// spec.sources, at branch. Only sources whose repoURL contains repo are
// rewritten; Helm chart sources are never touched.
func redirectSources(spec map[string]any, branch, repo string) {
	if source, ok := spec[sourceKey]; ok {
		if m, ok := source.(map[string]any); ok {
			redirectSource(m, branch, repo)
		}
		return
	}

	sources, ok := spec[sourcesKey].([]any)
	if !ok {
		return
	}
	for _, source := range sources {
		if m, ok := source.(map[string]any); ok {
			redirectSource(m, branch, repo)
		}
	}
}

func redirectSource(source map[string]any, branch, repo string) bool {
	if _, ok := source[helmChartKey]; ok {
		log.Debug("Source is a Helm chart, skipping targetRevision update")
		return false
	}

	url, ok := source[repoURLKey].(string)
	if !ok || !strings.Contains(url, repo) {
		log.Debug("Source repoURL does not match repo, skipping targetRevision update", "repoURL", source[repoURLKey], "repo", repo)
		return false
	}

	source[targetRevisionKey] = branch
	log.Debug("Updated targetRevision", "branch", branch)
	return true
}
