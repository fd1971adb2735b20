package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter_ExplicitShortCircuits(t *testing.T) {
	// The sample is full of commas, but the explicit option wins without
	// any detection.
	sample := []byte("a,b,c\n1,2,3\n")
	got := DetectDelimiter(sample, ExplicitDelimiter('|'))
	assert.Equal(t, '|', got)
}

func TestDetectDelimiter_Sniff(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"semicolon", "a;b;c\n1;2;3\n4;5;6\n", ';'},
		{"comma", "name,city\nalice,berlin\nbob,hamburg\n", ','},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"prefers higher field count", "a;b,c;d\n1;2,3;4\n", ';'},
		{"tie breaks by candidate order", "a,b;c\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDelimiter([]byte(tt.sample), AutoDelimiter())
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestDetectDelimiter_CountFallback(t *testing.T) {
	// Inconsistent field counts across lines defeat the sniffer; raw
	// occurrence counting picks the pipe.
	sample := []byte("x|y\na|b|c\nplain line\n")
	got := DetectDelimiter(sample, AutoDelimiter())
	assert.Equal(t, '|', got)
}

func TestDetectDelimiter_DefaultWhenNoCandidates(t *testing.T) {
	sample := []byte("just some text\nwith no separators\n")
	got := DetectDelimiter(sample, AutoDelimiter())
	assert.Equal(t, ';', got)
}

func TestDetectDelimiter_EmptySample(t *testing.T) {
	got := DetectDelimiter(nil, AutoDelimiter())
	assert.Equal(t, ';', got)
}

func TestDetectDelimiter_InvalidBytesNeverFail(t *testing.T) {
	sample := append([]byte{0xFF, 0xFE}, []byte("a;b\n1;2\n")...)
	got := DetectDelimiter(sample, AutoDelimiter())
	assert.Equal(t, ';', got)
}

func TestSampleLines_DropsTruncatedTail(t *testing.T) {
	lines := sampleLines("a;b\nc;d\ne;")
	require.Len(t, lines, 2)
	assert.Equal(t, "a;b", lines[0])
	assert.Equal(t, "c;d", lines[1])
}
