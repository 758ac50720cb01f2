package parser

import (
	"testing"

	"github.com/atikulmunna/logdecode/internal/labels"
)

// BenchmarkCompatTokenizer measures the character-scanning tokenizer.
func BenchmarkCompatTokenizer(b *testing.B) {
	line := "2024-01-01 10:00:00 1 0 7 OK\n"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		CompatTokenizer{}.Tokenize(line)
	}
}

// BenchmarkFieldsTokenizer measures the whitespace-splitting tokenizer.
func BenchmarkFieldsTokenizer(b *testing.B) {
	line := "2024-01-01 10:00:00 1 0 7 OK\n"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		FieldsTokenizer{}.Tokenize(line)
	}
}

// BenchmarkDecode measures tokenizing plus label resolution.
func BenchmarkDecode(b *testing.B) {
	tables, _ := labels.NewRegistry().Lookup(labels.AutoWater)
	d := NewDecoder(tables, labels.AutoWater, nil)
	lines := []string{
		"2024-01-01 10:00:00 0 0 0 OK\n",
		"2024-01-01 10:00:05 1 2 15 OK\n",
		"2024-01-01 10:00:10 3 5 5 BAD\n",
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Decode(lines[i%len(lines)])
	}
}
