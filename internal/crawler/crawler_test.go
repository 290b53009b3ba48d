package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemapath/internal/datamodel"
	"schemapath/internal/extractor"
)

const modelSource = `package models

type Customer struct {
	ID   uint
	Name string
}

type Order struct {
	ID       uint
	Customer *Customer
}
`

const vendoredSource = `package vendored

type Leftover struct {
	ID uint
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCrawler_CollectModel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models", "models.go"), modelSource)
	writeFile(t, filepath.Join(root, "vendor", "leftover.go"), vendoredSource)
	writeFile(t, filepath.Join(root, "README.md"), "not go")

	ext, err := extractor.NewExtractor("go")
	require.NoError(t, err)

	result, err := NewCrawler(ext).CollectModel(root)
	require.NoError(t, err)

	assert.Len(t, result.Defs, 2)
	assert.Equal(t, 2, result.Model.Size())
	assert.Nil(t, result.Model.Table("leftovers"))

	orders := result.Model.Table("orders")
	require.NotNil(t, orders)
	require.Len(t, orders.Associations, 1)
	assert.Equal(t, datamodel.KindToParent, orders.Associations[0].Kind)
	assert.Equal(t, "customers", orders.Associations[0].Destination.Name)
}

func TestCrawler_ScanProjectCallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models.go"), modelSource)

	ext, err := extractor.NewExtractor("go")
	require.NoError(t, err)

	var names []string
	err = NewCrawler(ext).ScanProject(root, func(def extractor.TableDef) {
		names = append(names, def.Name)
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Customer", "Order"}, names)
}
