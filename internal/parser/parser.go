package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/atikulmunna/logdecode/internal/labels"
	"github.com/atikulmunna/logdecode/internal/model"
)

var (
	// ErrBadCode is returned when a code field is not a base-10 integer.
	ErrBadCode = errors.New("code field is not an integer")
	// ErrMissingField is returned when a line ends before all code fields are seen.
	ErrMissingField = errors.New("missing field")
)

// Tokenizer splits a raw controller line into its positional fields.
type Tokenizer interface {
	Tokenize(line string) (model.LogRecord, error)
}

// NewTokenizer returns the tokenizer registered under name.
func NewTokenizer(name string) (Tokenizer, error) {
	switch name {
	case "", "compat":
		return CompatTokenizer{}, nil
	case "fields":
		return FieldsTokenizer{}, nil
	default:
		return nil, errors.Errorf("unknown tokenizer %q (want compat or fields)", name)
	}
}

// ---------------------------------------------------------------------------
// Compat Tokenizer
// ---------------------------------------------------------------------------

// CompatTokenizer reproduces the field assignment of the controller's own decoder.
//
// Only ' ' and '\n' delimit. Each delimiter hands the pending token to the first
// unfilled slot: an empty token leaves a string slot empty, so doubled spaces
// shift the mapping, while an empty integer slot fails. A trailing token with no
// delimiter after it is dropped, as is anything after the state slot is filled.
// Lines are expected with "\r\n" already translated to "\n", as the tailer does.
type CompatTokenizer struct{}

func (CompatTokenizer) Tokenize(line string) (model.LogRecord, error) {
	var rec model.LogRecord
	var typeSet, codeSet, detSet bool
	start := 0

	assign := func(tok string) error {
		var err error
		switch {
		case rec.Date == "":
			rec.Date = tok
		case rec.Time == "":
			rec.Time = tok
		case !typeSet:
			rec.TypeCode, err = atoi("type", tok)
			typeSet = true
		case !codeSet:
			rec.CodeCode, err = atoi("code", tok)
			codeSet = true
		case !detSet:
			rec.DetailCode, err = atoi("detail", tok)
			detSet = true
		case rec.State == "":
			rec.State = tok
		}
		return err
	}

	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\n' {
			continue
		}
		if err := assign(line[start:i]); err != nil {
			return rec, err
		}
		start = i + 1
	}

	switch {
	case !typeSet:
		return rec, errors.Wrap(ErrMissingField, "type")
	case !codeSet:
		return rec, errors.Wrap(ErrMissingField, "code")
	case !detSet:
		return rec, errors.Wrap(ErrMissingField, "detail")
	}
	return rec, nil
}

// ---------------------------------------------------------------------------
// Fields Tokenizer
// ---------------------------------------------------------------------------

// FieldsTokenizer splits on any run of whitespace and ignores empty fields.
type FieldsTokenizer struct{}

func (FieldsTokenizer) Tokenize(line string) (model.LogRecord, error) {
	f := strings.Fields(line)
	if len(f) < 6 {
		return model.LogRecord{}, errors.Wrapf(ErrMissingField, "got %d of 6 fields", len(f))
	}

	rec := model.LogRecord{Date: f[0], Time: f[1], State: f[5]}
	var err error
	if rec.TypeCode, err = atoi("type", f[2]); err != nil {
		return rec, err
	}
	if rec.CodeCode, err = atoi("code", f[3]); err != nil {
		return rec, err
	}
	if rec.DetailCode, err = atoi("detail", f[4]); err != nil {
		return rec, err
	}
	return rec, nil
}

// ---------------------------------------------------------------------------
// Decoder
// ---------------------------------------------------------------------------

// Decoder turns raw lines into records with resolved labels.
type Decoder struct {
	tables  *labels.Tables
	project string
	tok     Tokenizer
}

// NewDecoder creates a Decoder. A nil tables value marks an unknown project;
// every Decode call then fails with labels.ErrConfigMissing.
func NewDecoder(tables *labels.Tables, project string, tok Tokenizer) *Decoder {
	if tok == nil {
		tok = CompatTokenizer{}
	}
	return &Decoder{tables: tables, project: project, tok: tok}
}

// Decode tokenizes one raw line and resolves its type, code and detail labels.
func (d *Decoder) Decode(line string) (model.DecodedRecord, error) {
	rec, err := d.tok.Tokenize(line)
	if err != nil {
		return model.DecodedRecord{}, err
	}
	if d.tables == nil {
		return model.DecodedRecord{}, errors.Wrapf(labels.ErrConfigMissing, "no label tables for project %q", d.project)
	}

	out := model.DecodedRecord{LogRecord: rec}
	if out.Type, err = d.tables.Types.Label(rec.TypeCode); err != nil {
		return model.DecodedRecord{}, errors.Wrap(err, "type")
	}
	if out.Code, err = d.tables.Codes.Label(rec.CodeCode); err != nil {
		return model.DecodedRecord{}, errors.Wrap(err, "code")
	}
	if out.Detail, err = d.tables.Details.Label(rec.DetailCode); err != nil {
		return model.DecodedRecord{}, errors.Wrap(err, "detail")
	}
	return out, nil
}

// atoi parses a code field.
func atoi(field, tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrBadCode, "%s %q", field, tok)
	}
	return n, nil
}
