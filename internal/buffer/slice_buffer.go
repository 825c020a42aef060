// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// SliceBuffer keeps a source as a slice of lines without trailing newlines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
}

// NewSliceBuffer creates a buffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// FromBytes creates a buffer from in-memory text.
func FromBytes(content []byte) *SliceBuffer {
	sb := NewSliceBuffer()
	// bytes.Reader never fails
	_ = sb.read(bytes.NewReader(content))
	return sb
}

// Load reads a file into the buffer, replacing existing content.
func (sb *SliceBuffer) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := sb.read(file); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	sb.filePath = filePath
	return nil
}

func (sb *SliceBuffer) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	return nil
}

// Lines returns all lines. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the 0-based line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines with newlines.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// FilePath returns the path the buffer was loaded from.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}
