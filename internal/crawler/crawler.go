// Package crawler scans a directory tree for source files and streams the
// table definitions found in them.
package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	"schemapath/internal/datamodel"
	"schemapath/internal/extractor"
)

// Crawler scans a directory for source files.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor) *Crawler {
	return &Crawler{
		extractor: ext,
		ignored:   []string{".git", "vendor", "node_modules", "testdata"},
	}
}

// ScanProject walks the root directory and processes all relevant files.
// It uses a callback to stream table definitions, preventing large memory
// buildup.
func (c *Crawler) ScanProject(root string, onTable func(extractor.TableDef)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		defs, err := c.extractor.ExtractFromFile(path)
		if err != nil {
			// Skip unparsable files instead of failing the whole scan.
			return nil
		}

		for _, def := range defs {
			onTable(def)
		}

		return nil
	})
}

// CollectModel scans the project and derives a data model from every table
// definition found.
func (c *Crawler) CollectModel(root string) (*ModelResult, error) {
	var defs []extractor.TableDef
	err := c.ScanProject(root, func(def extractor.TableDef) {
		defs = append(defs, def)
	})
	if err != nil {
		return nil, err
	}
	return &ModelResult{
		Defs:  defs,
		Model: extractor.ModelFromTables(defs),
	}, nil
}

// ModelResult pairs the raw definitions with the derived model.
type ModelResult struct {
	Defs  []extractor.TableDef
	Model *datamodel.DataModel
}
