// Package extractor derives schema table definitions from Go source code.
// Struct declarations become tables; fields referencing other extracted
// structs become associations.
package extractor

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// TableDef is one extracted struct, before model derivation.
type TableDef struct {
	Name     string     `json:"name"`
	Filepath string     `json:"filepath,omitempty"`
	Fields   []FieldDef `json:"fields"`
}

// FieldDef is a single struct field as it appears in source.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
}

// LanguageExtractor supplies the grammar, the capture query and the
// node-to-definition conversion for one source language.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractTable(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *TableDef
}

// Extractor orchestrates the extraction process using language-specific
// extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "go":
		langExt = &GoExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractFromFile parses a single source file and extracts all struct
// definitions.
func (e *Extractor) ExtractFromFile(filepath string) ([]TableDef, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return e.ExtractFromSource(sourceCode, filepath)
}

// ExtractFromSource parses source bytes and extracts all struct definitions.
func (e *Extractor) ExtractFromSource(sourceCode []byte, filepath string) ([]TableDef, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath, err)
	}

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var defs []TableDef
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := query.CaptureNameForId(c.Index)
			def := e.langExtractor.ExtractTable(captureName, c.Node, sourceCode, filepath)
			if def != nil {
				defs = append(defs, *def)
			}
		}
	}

	return defs, nil
}
