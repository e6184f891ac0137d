package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// fileDocument is the on-disk catalog layout: a list of flat column maps.
type fileDocument struct {
	Products []map[string]string `yaml:"products"`
}

// FileRepo serves the catalog straight from a YAML file. The file is
// re-read on every Load so edits show up without a restart.
type FileRepo struct {
	path string
}

// NewFile creates a YAML-file catalog repository.
func NewFile(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Load returns the rows matching sel ordered by id.
func (r *FileRepo) Load(_ context.Context, sel facet.Selection) ([]product.Record, error) {
	all, err := ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	records := make([]product.Record, 0, len(all))
	for i := range all {
		if sel.Matches(all[i].PersonalColor, all[i].ProductType) {
			records = append(records, all[i])
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Ping checks that the file is readable.
func (r *FileRepo) Ping(_ context.Context) error {
	if _, err := os.Stat(r.path); err != nil {
		return fmt.Errorf("stat catalog: %w", err)
	}
	return nil
}

// ReadFile parses every record in a YAML catalog file, in file order.
func ReadFile(path string) ([]product.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]product.Record, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	records := make([]product.Record, len(doc.Products))
	for i, fields := range doc.Products {
		records[i] = product.RecordFromFields(fields)
	}
	return records, nil
}
