package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoExtractor implements LanguageExtractor for Go.
type GoExtractor struct{}

func (g *GoExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (g *GoExtractor) GetQuery() string {
	return `(type_spec) @type`
}

// ExtractTable converts a struct type_spec capture into a TableDef. Non-struct
// type specs yield nil.
func (g *GoExtractor) ExtractTable(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *TableDef {
	if captureName != "type" {
		return nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil || typeNode.Type() != "struct_type" {
		return nil
	}

	return &TableDef{
		Name:     nameNode.Content(sourceCode),
		Filepath: filepath,
		Fields:   g.extractFields(typeNode, sourceCode),
	}
}

func (g *GoExtractor) extractFields(structNode *sitter.Node, sourceCode []byte) []FieldDef {
	fields := []FieldDef{}
	var fieldList *sitter.Node
	for i := 0; i < int(structNode.ChildCount()); i++ {
		child := structNode.Child(i)
		if child.Type() == "field_declaration_list" {
			fieldList = child
			break
		}
	}
	if fieldList == nil {
		return fields
	}

	for i := 0; i < int(fieldList.NamedChildCount()); i++ {
		fieldDecl := fieldList.NamedChild(i)
		if fieldDecl.Type() != "field_declaration" {
			continue
		}

		typeNode := fieldDecl.ChildByFieldName("type")
		var fieldType string
		if typeNode != nil {
			fieldType = typeNode.Content(sourceCode)
		}

		tagNode := fieldDecl.ChildByFieldName("tag")
		var fieldTag string
		if tagNode != nil {
			fieldTag = tagNode.Content(sourceCode)
		}

		foundNames := false
		for j := 0; j < int(fieldDecl.NamedChildCount()); j++ {
			child := fieldDecl.NamedChild(j)
			if child.Type() == "field_identifier" {
				fields = append(fields, FieldDef{
					Name: child.Content(sourceCode),
					Type: fieldType,
					Tag:  fieldTag,
				})
				foundNames = true
			}
		}

		// Embedded field: the type stands in for the name.
		if !foundNames && fieldType != "" {
			name := fieldType
			if lastDot := strings.LastIndex(name, "."); lastDot != -1 {
				name = name[lastDot+1:]
			}
			name = strings.TrimPrefix(name, "*")
			fields = append(fields, FieldDef{Name: name, Type: fieldType, Tag: fieldTag})
		}
	}
	return fields
}
