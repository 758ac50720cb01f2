package tailer

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// SourceState is what a resumed run needs to know about one source.
type SourceState struct {
	Offset int64  `json:"offset"`
	Last   string `json:"last"` // last raw line, for the repeat filter
}

// checkpointData is the on-disk JSON structure.
type checkpointData struct {
	Sources map[string]SourceState `json:"sources"`
}

// Checkpoint persists read positions so a later run can continue where the
// previous one stopped instead of appending everything again.
type Checkpoint struct {
	path string
	data checkpointData
}

// NewCheckpoint loads the checkpoint at path, or starts an empty one if the
// file does not exist.
func NewCheckpoint(path string) (*Checkpoint, error) {
	c := &Checkpoint{
		path: path,
		data: checkpointData{Sources: make(map[string]SourceState)},
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return c, nil
	case err != nil:
		return nil, errors.Wrap(err, "read checkpoint")
	}
	if err := json.Unmarshal(raw, &c.data); err != nil {
		return nil, errors.Wrapf(err, "parse checkpoint %s", path)
	}
	if c.data.Sources == nil {
		c.data.Sources = make(map[string]SourceState)
	}
	return c, nil
}

// Get returns the saved state for a source path.
func (c *Checkpoint) Get(path string) (SourceState, bool) {
	v, ok := c.data.Sources[path]
	return v, ok
}

// Set records the state for a source path.
func (c *Checkpoint) Set(path string, s SourceState) {
	c.data.Sources[path] = s
}

// Save writes the checkpoint to disk atomically.
func (c *Checkpoint) Save() error {
	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file first, then rename for atomicity.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return errors.Wrap(err, "write checkpoint")
	}
	return errors.Wrap(os.Rename(tmp, c.path), "replace checkpoint")
}
