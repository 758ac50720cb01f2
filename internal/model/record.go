package model

// RawLine is one line read from a controller log, exactly as it appeared on disk.
type RawLine struct {
	Text   string // line text including its "\n" terminator, if any
	Source string // originating file path
	Offset int64  // byte offset just past this line
}

// LogRecord holds the six positional fields of a controller log line.
type LogRecord struct {
	Date       string
	Time       string
	TypeCode   int
	CodeCode   int
	DetailCode int
	State      string
}

// DecodedRecord is a LogRecord with its codes resolved to labels.
type DecodedRecord struct {
	LogRecord
	Type   string
	Code   string
	Detail string
}
