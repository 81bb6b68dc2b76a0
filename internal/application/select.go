package application

import (
	"github.com/charmbracelet/log"
	"github.com/dag-andersen/argocd-diff-preview/internal/manifest"
	"github.com/dag-andersen/argocd-diff-preview/internal/selector"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// IgnoreAnnotation excludes a resource when set to "true".
const IgnoreAnnotation = "argocd-diff-preview/ignore"

// Select returns the Applications and ApplicationSets among resources that
// are not ignored and match sel, preserving order. A nil sel matches
// everything.
func Select(resources []manifest.RawResource, sel selector.Selector) []Application {
	var apps []Application
	for _, r := range resources {
		app, ok := selectResource(r, sel)
		if !ok {
			continue
		}
		apps = append(apps, app)
	}
	return apps
}

func selectResource(r manifest.RawResource, sel selector.Selector) (Application, bool) {
	if r.IsNull() {
		return Application{}, false
	}

	rawKind, found, err := unstructured.NestedString(r.Object, "kind")
	if err != nil || !found {
		return Application{}, false
	}
	kind, ok := kindOf(rawKind)
	if !ok {
		return Application{}, false
	}

	app := Application{
		FileName: r.FileName,
		Object:   &unstructured.Unstructured{Object: r.Object},
		Kind:     kind,
	}

	if ignored, _, _ := unstructured.NestedString(r.Object, "metadata", "annotations", IgnoreAnnotation); ignored == "true" {
		log.Debug("Ignoring application due to annotation", "name", app.Name(), "annotation", IgnoreAnnotation, "file", r.FileName)
		return Application{}, false
	}

	if sel != nil {
		labels := stringLabels(r.Object)
		log.Debug("Application labels", "name", app.Name(), "labels", labels)
		if !sel.Matches(labels) {
			log.Debug("Ignoring application due to selector mismatch", "name", app.Name(), "selector", sel.String(), "file", r.FileName)
			return Application{}, false
		}
		log.Debug("Selected application due to selector match", "name", app.Name(), "selector", sel.String(), "file", r.FileName)
	}

	return app, true
}

// stringLabels returns metadata.labels, skipping entries whose value is not a
// string.
func stringLabels(obj map[string]any) map[string]string {
	field, found, err := unstructured.NestedFieldNoCopy(obj, "metadata", "labels")
	raw, ok := field.(map[string]any)
	if err != nil || !found || !ok {
		return map[string]string{}
	}
	labels := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			labels[k] = s
		}
	}
	return labels
}
