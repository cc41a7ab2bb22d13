package fs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/commpost"
)

// ReadPostIDs reads a JSON array of post IDs, such as post_ids.json.
func ReadPostIDs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post ids: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, commpost.Errorf(commpost.EINVALID, "post ids %s: %v", path, err)
	}
	return ids, nil
}
