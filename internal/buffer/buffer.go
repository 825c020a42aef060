// internal/buffer/buffer.go
package buffer

// Buffer is the read-only text of one source shown in the source view.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte
	FilePath() string
}
