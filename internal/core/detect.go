package core

import "strings"

// delimiterCandidates is the closed candidate set for detection, in
// preference order for tie-breaking.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// DefaultDelimiter is returned when nothing in the sample looks like a
// delimiter, and used for serialization when no detection result exists.
const DefaultDelimiter = ';'

// detectSampleSize is how many leading bytes of a file the detector
// inspects.
const detectSampleSize = 8192

// maxSniffLines caps how many sample lines the sniffer considers.
const maxSniffLines = 32

// DetectDelimiter picks the field delimiter for one file. An explicit
// option is returned unchanged. Otherwise the first detectSampleSize bytes
// are decoded permissively (invalid bytes replaced, never failing) and
// statistical dialect sniffing runs over the candidate set; if sniffing
// finds no candidate with a consistent field count, the candidate with the
// highest raw occurrence count wins, and if all counts are zero the default
// is returned. This function never fails.
func DetectDelimiter(data []byte, opt DelimiterOption) rune {
	if !opt.IsAuto() {
		return opt.Rune()
	}

	sample := data
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}
	text := decodeReplace(sample, EncodingUTF8SIG)

	if d, ok := sniffDelimiter(text); ok {
		return d
	}

	best := DefaultDelimiter
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(text, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// sniffDelimiter infers the delimiter from sample structure: a candidate
// qualifies when every sampled line splits into the same field count of at
// least two. Among qualifiers the highest field count wins; ties fall back
// to candidate order.
func sniffDelimiter(text string) (rune, bool) {
	lines := sampleLines(text)
	if len(lines) == 0 {
		return 0, false
	}

	best := rune(0)
	bestFields := 0
	for _, cand := range delimiterCandidates {
		fields := strings.Count(lines[0], string(cand)) + 1
		if fields < 2 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(cand))+1 != fields {
				consistent = false
				break
			}
		}
		if consistent && fields > bestFields {
			best, bestFields = cand, fields
		}
	}
	if bestFields == 0 {
		return 0, false
	}
	return best, true
}

// sampleLines splits sample text into non-empty lines, dropping the final
// line when the sample was cut mid-line (a truncated line would skew field
// counts). At most maxSniffLines lines are returned.
func sampleLines(text string) []string {
	raw := strings.Split(text, "\n")
	if len(raw) > 1 && !strings.HasSuffix(text, "\n") {
		raw = raw[:len(raw)-1]
	}
	var lines []string
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSniffLines {
			break
		}
	}
	return lines
}
