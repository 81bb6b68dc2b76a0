package manifest

import (
	"bufio"
	"io"
	"strings"
)

// DocumentSeparator is the line that separates documents in a multi-document stream.
const DocumentSeparator = "---"

// SplitDocuments splits a multi-document YAML stream into raw chunks. Only a
// line that is exactly "---" starts a new chunk, so a stream without
// separators yields a single chunk and consecutive separators yield empty ones.
// Lines may be of any length.
func SplitDocuments(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)

	chunks := []*strings.Builder{{}}
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line == DocumentSeparator {
			chunks = append(chunks, &strings.Builder{})
		} else {
			current := chunks[len(chunks)-1]
			current.WriteString(line)
			current.WriteByte('\n')
		}

		if err == io.EOF {
			break
		}
	}

	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.String()
	}
	return out, nil
}
