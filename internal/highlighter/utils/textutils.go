package utils

import (
	"strings"
	"unicode/utf8"
)

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a byte slice.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}

	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// CaptureNameToStyleName maps a tree-sitter capture name ("@function.call")
// to a theme style name ("function.call").
func CaptureNameToStyleName(captureName string) string {
	return strings.TrimPrefix(captureName, "@")
}
