package lang

import (
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS holds the highlight queries, laid out as queries/<QueryPath>/highlights.scm.
var QueryFS fs.FS

// Language is a grammar plus the files it applies to.
type Language struct {
	Name           string
	TreeSitterLang *sitter.Language
	Extensions     []string
	// QueryPath is the directory under queries/ holding highlights.scm.
	QueryPath string
}

// GetQuery loads the language's highlight query from QueryFS.
func (l *Language) GetQuery() ([]byte, error) {
	if QueryFS == nil {
		return nil, fmt.Errorf("no query filesystem set")
	}
	if l.QueryPath == "" {
		return nil, fmt.Errorf("no query path defined for language %s", l.Name)
	}
	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, queryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load query for %s: %w", l.Name, err)
	}
	return query, nil
}
