package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/reflow/pkg/errors"
)

// ReadJSON decodes a snapshot from r.
//
// ReadJSON returns an error if the JSON is malformed, if the root is empty,
// or if a rect has an empty or duplicate id. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if s.Root == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "snapshot has no root")
	}
	seen := make(map[string]bool, len(s.Rects))
	for _, r := range s.Rects {
		if r.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "rect without id")
		}
		if seen[r.ID] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "rect %s listed twice", r.ID)
		}
		seen[r.ID] = true
	}
	return &s, nil
}

// ImportJSON reads the snapshot file at path.
func ImportJSON(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
