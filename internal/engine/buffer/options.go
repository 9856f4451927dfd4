package buffer

import "strings"

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithLineEnding sets the line ending Write uses.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithPageSize sets the height of the initial page window.
func WithPageSize(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// DetectLineEnding picks the line ending used most often in text. Ties and
// text without line breaks give LF.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	cr := strings.Count(text, "\r") - crlf

	switch {
	case crlf > lf && crlf >= cr:
		return LineEndingCRLF
	case cr > lf && cr > crlf:
		return LineEndingCR
	}
	return LineEndingLF
}
