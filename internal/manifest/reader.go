package manifest

import (
	"context"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ReadFile opens a manifest file and parses each of its documents.
func ReadFile(path string) ([]RawResource, error) {
	log.Debug("Opening file", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	chunks, err := SplitDocuments(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	return ParseChunks(path, chunks), nil
}

// ReadResources reads all files concurrently. The returned resources keep the
// order of paths, and of documents within each file. The first unreadable
// file fails the whole call.
func ReadResources(ctx context.Context, paths []string) ([]RawResource, error) {
	perFile := make([][]RawResource, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resources, err := ReadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = resources
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var resources []RawResource
	for _, r := range perFile {
		resources = append(resources, r...)
	}
	return resources, nil
}
