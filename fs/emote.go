package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/commpost"
)

// Emote mapping files, loaded in order. Entries of later files win.
const (
	DefaultEmoteMappingFile = "emoji_mapping_default.json"
	EmoteMappingFile        = "emoji_mapping.json"
)

// LoadEmoteMap builds the emote mapping from the mapping files in dir.
// Missing files count as empty; a malformed file is an error.
func LoadEmoteMap(dir string) (*commpost.EmoteMap, error) {
	var layers []map[string]string
	for _, name := range []string{DefaultEmoteMappingFile, EmoteMappingFile} {
		layer, err := readMapping(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return commpost.NewEmoteMap(layers...), nil
}

func readMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("read emote mapping: %w", err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, commpost.Errorf(commpost.EINVALID, "emote mapping %s: %v", filepath.Base(path), err)
	}
	return m, nil
}
