// internal/types/position.go
package types

// Position is a cursor position inside the source view.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int
}

// StyledRange is a run of columns on one line drawn with a named theme style.
type StyledRange struct {
	StartCol  int // Inclusive rune index
	EndCol    int // Exclusive rune index
	StyleName string
}
