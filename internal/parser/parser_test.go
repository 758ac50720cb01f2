package parser

import (
	"errors"
	"testing"

	"github.com/atikulmunna/logdecode/internal/labels"
	"github.com/atikulmunna/logdecode/internal/model"
)

func autoWater(t *testing.T) *labels.Tables {
	t.Helper()
	tables, ok := labels.NewRegistry().Lookup(labels.AutoWater)
	if !ok {
		t.Fatal("AutoWater tables not registered")
	}
	return tables
}

func TestCompatTokenizer(t *testing.T) {
	want := model.LogRecord{Date: "2024-01-01", Time: "10:00:00", TypeCode: 1, CodeCode: 0, DetailCode: 7, State: "OK"}

	cases := []struct {
		name string
		line string
		want model.LogRecord
	}{
		{"plain", "2024-01-01 10:00:00 1 0 7 OK\n", want},
		{"leading space", " 2024-01-01 10:00:00 1 0 7 OK\n", want},
		{"doubled space before time", "2024-01-01  10:00:00 1 0 7 OK\n", want},
		{"doubled space before state", "2024-01-01 10:00:00 1 0 7  OK\n", want},
		{"extra tokens dropped", "2024-01-01 10:00:00 1 0 7 OK SD_READ MASK_32\n", want},
		{"trailing token without terminator", "2024-01-01 10:00:00 1 0 7 OK",
			model.LogRecord{Date: "2024-01-01", Time: "10:00:00", TypeCode: 1, DetailCode: 7}},
		{"tab is not a delimiter", "2024-01-01\t10:00:00 12:00 1 0 7\n",
			model.LogRecord{Date: "2024-01-01\t10:00:00", Time: "12:00", TypeCode: 1, CodeCode: 0, DetailCode: 7, State: ""}},
	}

	for _, tc := range cases {
		got, err := CompatTokenizer{}.Tokenize(tc.line)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestCompatTokenizerErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"doubled space before type", "2024-01-01 10:00:00  1 0 7 OK\n", ErrBadCode},
		{"non-integer code", "2024-01-01 10:00:00 1 x 7 OK\n", ErrBadCode},
		{"too few fields", "2024-01-01 10:00:00 1 0\n", ErrMissingField},
		{"empty line", "\n", ErrMissingField},
		{"detail without terminator", "2024-01-01 10:00:00 1 0 7", ErrMissingField},
	}

	for _, tc := range cases {
		_, err := CompatTokenizer{}.Tokenize(tc.line)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestFieldsTokenizer(t *testing.T) {
	got, err := FieldsTokenizer{}.Tokenize("2024-01-01   10:00:00\t1 0  7 OK\r\n")
	if err != nil {
		t.Fatal(err)
	}
	want := model.LogRecord{Date: "2024-01-01", Time: "10:00:00", TypeCode: 1, CodeCode: 0, DetailCode: 7, State: "OK"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if _, err := (FieldsTokenizer{}).Tokenize("2024-01-01 10:00:00 1 0 7\n"); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	if _, err := (FieldsTokenizer{}).Tokenize("2024-01-01 10:00:00 1 0 seven OK\n"); !errors.Is(err, ErrBadCode) {
		t.Errorf("expected ErrBadCode, got %v", err)
	}
}

func TestNewTokenizer(t *testing.T) {
	if tok, err := NewTokenizer(""); err != nil || tok != (CompatTokenizer{}) {
		t.Errorf("expected default compat tokenizer, got %v (%v)", tok, err)
	}
	if tok, err := NewTokenizer("fields"); err != nil || tok != (FieldsTokenizer{}) {
		t.Errorf("expected fields tokenizer, got %v (%v)", tok, err)
	}
	if _, err := NewTokenizer("regex"); err == nil {
		t.Error("expected error for unknown tokenizer")
	}
}

func TestDecodeAutoWater(t *testing.T) {
	d := NewDecoder(autoWater(t), labels.AutoWater, nil)

	rec, err := d.Decode("2024-01-01 10:00:00 1 0 7 OK\n")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Type != "Check" {
		t.Errorf("expected type 'Check', got %q", rec.Type)
	}
	if rec.Code != "All     " {
		t.Errorf("expected padded code 'All     ', got %q", rec.Code)
	}
	if rec.Detail != "Correct updated           " {
		t.Errorf("expected padded detail, got %q", rec.Detail)
	}
	if rec.State != "OK" {
		t.Errorf("expected state OK, got %q", rec.State)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	d := NewDecoder(autoWater(t), labels.AutoWater, nil)

	// Types has four entries: 3 is the last valid code.
	if _, err := d.Decode("2024-01-01 10:00:00 3 6 17 OK\n"); err != nil {
		t.Errorf("expected last index of every table to decode, got %v", err)
	}
	for _, line := range []string{
		"2024-01-01 10:00:00 4 0 0 OK\n",
		"2024-01-01 10:00:00 0 7 0 OK\n",
		"2024-01-01 10:00:00 0 0 18 OK\n",
		"2024-01-01 10:00:00 -1 0 0 OK\n",
	} {
		if _, err := d.Decode(line); !errors.Is(err, labels.ErrIndexOutOfRange) {
			t.Errorf("%q: expected ErrIndexOutOfRange, got %v", line, err)
		}
	}
}

func TestDecodeUnknownProject(t *testing.T) {
	d := NewDecoder(nil, "Greenhouse", nil)

	_, err := d.Decode("2024-01-01 10:00:00 1 0 7 OK\n")
	if !errors.Is(err, labels.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
	if got := err.Error(); got != `no label tables for project "Greenhouse": configuration missing` {
		t.Errorf("unexpected message %q", got)
	}
}
