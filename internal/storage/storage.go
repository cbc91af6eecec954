// Package storage persists the similarity index blob and exports example pairs.
package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrObjectNotFound = errors.New("object not found")

// cleans a blob key and rejects anything that would escape its root
func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/../") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}

	return cleaned, nil
}

func cleanPrefix(prefix string) string {
	prefix = strings.TrimSpace(strings.TrimPrefix(prefix, "/"))
	if prefix == "" {
		return ""
	}

	prefix = path.Clean(prefix)
	if prefix == "." {
		return ""
	}

	return prefix
}
