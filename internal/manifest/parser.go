package manifest

import (
	"github.com/charmbracelet/log"
	"sigs.k8s.io/yaml"
)

// RawResource is a single parsed document and the file it came from.
type RawResource struct {
	FileName string
	// Index is the position of the document within its file.
	Index int
	// Object is nil for the null document: a chunk that failed to parse, was
	// empty, or did not contain a mapping.
	Object map[string]any
	// Err is set to a *DocumentParseError when the chunk failed to parse.
	Err error
}

// IsNull reports whether the resource holds no document.
func (r RawResource) IsNull() bool {
	return r.Object == nil
}

// ParseDocument parses one raw chunk into a RawResource. Parse failures are
// recorded on the result and never abort processing.
func ParseDocument(fileName string, index int, chunk string) RawResource {
	resource := RawResource{FileName: fileName, Index: index}

	var obj map[string]any
	if err := yaml.Unmarshal([]byte(chunk), &obj); err != nil {
		resource.Err = &DocumentParseError{FileName: fileName, Index: index, Err: err}
		log.Debug("Failed to parse document", "file", fileName, "document", index+1, "error", err)
		return resource
	}

	resource.Object = obj
	return resource
}

// ParseChunks parses every chunk of a file, keeping their order.
func ParseChunks(fileName string, chunks []string) []RawResource {
	resources := make([]RawResource, 0, len(chunks))
	for i, chunk := range chunks {
		resources = append(resources, ParseDocument(fileName, i, chunk))
	}
	return resources
}
