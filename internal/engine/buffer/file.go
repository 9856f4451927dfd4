package buffer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadLines loads the lines of a regular file without touching any buffer.
func ReadLines(path string) ([]string, LineEnding, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, LineEndingLF, fmt.Errorf("read %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, LineEndingLF, fmt.Errorf("read %s: %w", path, ErrNotRegular)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LineEndingLF, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(data)
	return SplitLines(text), DetectLineEnding(text), nil
}

// Read replaces the buffer contents with the file at path and makes it the
// default file name. The cursor moves to the start of the buffer and
// observers receive FileOpened rather than per-line notifications.
func (b *Buffer) Read(path string) error {
	lines, le, err := ReadLines(path)
	if err != nil {
		return err
	}
	b.lines = lines
	b.lineEnding = le
	b.fileName = path
	b.pageTop = 0
	b.pos = Point{}
	b.notifyFileOpened(path)
	b.notifyPositionChanged(b.pos)
	return nil
}

// Write saves the buffer to path, or to the default file name when path is
// empty. Each line is terminated by the buffer's line ending.
func (b *Buffer) Write(path string) error {
	if path == "" {
		path = b.fileName
	}
	if path == "" {
		return ErrNoFileName
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	eol := b.lineEnding.Sequence()
	for _, line := range b.lines {
		if _, err := w.WriteString(line + eol); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if b.fileName == "" {
		b.fileName = path
	}
	return nil
}

// Size returns the number of bytes Write would produce.
func (b *Buffer) Size() int {
	n := 0
	eol := len(b.lineEnding.Sequence())
	for _, line := range b.lines {
		n += len(line) + eol
	}
	return n
}

// Text returns the buffer as it would be written.
func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}
	eol := b.lineEnding.Sequence()
	return strings.Join(b.lines, eol) + eol
}
