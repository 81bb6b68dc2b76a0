package application

import (
	"fmt"
	"strings"

	"github.com/dag-andersen/argocd-diff-preview/internal/manifest"
	"sigs.k8s.io/yaml"
)

// SerializationError is returned when an application cannot be rendered
// back to YAML.
type SerializationError struct {
	FileName string
	Name     string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize application %s from %s: %v", e.Name, e.FileName, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Serialize renders the applications as a multi-document YAML stream, each
// document followed by a separator line.
func Serialize(apps []Application) (string, error) {
	var out strings.Builder
	for _, app := range apps {
		data, err := yaml.Marshal(app.Object.Object)
		if err != nil {
			return "", &SerializationError{FileName: app.FileName, Name: app.Name(), Err: err}
		}
		out.Write(data)
		out.WriteString(manifest.DocumentSeparator + "\n")
	}
	return out.String(), nil
}
