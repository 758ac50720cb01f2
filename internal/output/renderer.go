package output

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/atikulmunna/logdecode/internal/model"
)

// Renderer writes decoded records to an output stream.
type Renderer interface {
	Render(rec model.DecodedRecord) error
}

// TextRenderer writes one human-readable line per record.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(rec model.DecodedRecord) error {
	_, err := fmt.Fprintf(r.w, "Date: %s; Time: %s; Type: %s; Code: %s; Detail: %s; State: %s\n",
		rec.Date, rec.Time, rec.Type, rec.Code, rec.Detail, rec.State)
	return err
}

// OpenAppend opens path for appending, creating it if needed.
// Existing content is never truncated.
func OpenAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open destination")
	}
	return f, nil
}
