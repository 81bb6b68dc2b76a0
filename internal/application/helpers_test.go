package application

import (
	"strings"
	"testing"

	"github.com/dag-andersen/argocd-diff-preview/internal/manifest"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// parseResources splits and parses content as if it was read from fileName.
func parseResources(t *testing.T, fileName, content string) []manifest.RawResource {
	t.Helper()

	chunks, err := manifest.SplitDocuments(strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to split documents: %v", err)
	}
	return manifest.ParseChunks(fileName, chunks)
}

// parseApplication parses a single Application or ApplicationSet document.
func parseApplication(t *testing.T, content string) Application {
	t.Helper()

	apps := Select(parseResources(t, "app.yaml", content), nil)
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	return apps[0]
}

func names(apps []Application) []string {
	out := make([]string, 0, len(apps))
	for _, app := range apps {
		out = append(out, app.Name())
	}
	return out
}

func nestedString(t *testing.T, app Application, fields ...string) (string, bool) {
	t.Helper()

	value, found, err := unstructured.NestedString(app.Object.Object, fields...)
	if err != nil {
		t.Fatalf("failed to read %s: %v", strings.Join(fields, "."), err)
	}
	return value, found
}

func nestedField(t *testing.T, app Application, fields ...string) (any, bool) {
	t.Helper()

	value, found, err := unstructured.NestedFieldNoCopy(app.Object.Object, fields...)
	if err != nil {
		t.Fatalf("failed to read %s: %v", strings.Join(fields, "."), err)
	}
	return value, found
}
