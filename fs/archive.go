// Package fs provides file-based access to post archives, emote mappings,
// id lists and JSON output.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/commpost"
)

// Ensure Archive implements commpost.Archive at compile time.
var _ commpost.Archive = (*Archive)(nil)

// Archive reads archived post pages from a flat directory. Each regular file
// holds one page and is named after its post ID, e.g. "Ugkx...xyz.html".
type Archive struct {
	dir string
}

// NewArchive creates a new Archive over dir.
func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// Sources lists the pages of the archive ordered by ID. Directories and
// dot-files are skipped.
func (a *Archive) Sources(ctx context.Context) ([]*commpost.Source, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	sources := make([]*commpost.Source, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		sources = append(sources, &commpost.Source{
			ID:         PostID(name),
			Path:       filepath.Join(a.dir, name),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})
	return sources, nil
}

// ReadSource returns the raw markup of src.
func (a *Archive) ReadSource(ctx context.Context, src *commpost.Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", src.ID, err)
	}
	return string(data), nil
}

// PostID returns the post ID of an archive file name: the name without its
// final extension.
func PostID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
