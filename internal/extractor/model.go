package extractor

import (
	"strings"
	"unicode"

	"schemapath/internal/datamodel"
)

// ModelFromTables derives a data model from extracted struct definitions.
// Table names are the snake_cased struct names. A field typed as another
// extracted struct becomes a relationship:
//
//	Other / *Other  ->  reference to a parent table
//	[]Other         ->  collection of child rows
//	many2many tag   ->  plain association via a join table
//
// Fields tagged schemapath:"-" or gorm:"-" produce ignored associations, and
// fields whose type is not an extracted struct produce nothing. Both
// directions of every relationship are materialized.
func ModelFromTables(defs []TableDef) *datamodel.DataModel {
	m := datamodel.New()

	tableNames := make(map[string]string, len(defs))
	for _, d := range defs {
		name := TableName(d.Name)
		tableNames[d.Name] = name
		m.AddTable(name)
	}

	for _, d := range defs {
		source := tableNames[d.Name]
		for _, f := range d.Fields {
			base, isSlice, ok := parseFieldType(f.Type)
			if !ok {
				continue
			}
			target, known := tableNames[base]
			if !known {
				continue
			}

			kind := datamodel.KindToParent
			if isSlice {
				kind = datamodel.KindToChild
			}
			if strings.Contains(f.Tag, "many2many") {
				kind = datamodel.KindPlain
			}
			m.Connect(source, target, kind, ignoredField(f.Tag))
		}
	}
	return m
}

// parseFieldType reduces a field type expression to its unqualified base
// name. Types that are not plain struct references (maps, funcs, channels,
// anonymous structs) are rejected.
func parseFieldType(fieldType string) (base string, isSlice bool, ok bool) {
	t := strings.TrimSpace(fieldType)
	if strings.HasPrefix(t, "[]") {
		isSlice = true
		t = strings.TrimPrefix(t, "[]")
	}
	t = strings.TrimPrefix(t, "*")
	if lastDot := strings.LastIndex(t, "."); lastDot != -1 {
		t = t[lastDot+1:]
	}
	if t == "" || strings.ContainsAny(t, "[]{}()<>- ") {
		return "", false, false
	}
	return t, isSlice, true
}

func ignoredField(tag string) bool {
	return strings.Contains(tag, `schemapath:"-"`) || strings.Contains(tag, `gorm:"-"`)
}

// TableName converts a struct name to its table name: snake_cased and
// pluralized, e.g. OrderItem -> order_items.
func TableName(structName string) string {
	return Pluralize(ToSnake(structName))
}

// Pluralize applies the usual English table-name pluralization rules.
func Pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "y") && len(name) > 1 && !isVowel(name[len(name)-2]):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"),
		strings.HasSuffix(name, "z"), strings.HasSuffix(name, "ch"),
		strings.HasSuffix(name, "sh"):
		return name + "es"
	default:
		return name + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// ToSnake converts a Go identifier to snake_case.
func ToSnake(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper rune unless it continues an acronym run.
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
