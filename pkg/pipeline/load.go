package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/tabplot/pkg/cache"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/source"
)

// Load reads the document's data source. It returns the table and a
// content hash used in cache keys. A document without a data source
// yields a nil table.
func Load(ctx context.Context, doc *Document) (*table.Table, string, error) {
	switch {
	case doc.Data.Path != "":
		return loadFile(doc.resolve(doc.Data.Path))
	case doc.Data.Mongo != nil:
		t, err := doc.Data.Mongo.Load(ctx)
		if err != nil {
			return nil, "", err
		}
		hash, err := tableHash(t)
		if err != nil {
			return nil, "", err
		}
		return t, hash, nil
	}
	return nil, "", nil
}

// loadFile reads a CSV file. The hash covers the file bytes.
func loadFile(path string) (*table.Table, string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return nil, "", errors.New(errors.ErrCodeInvalidFormat, "unsupported data file %q (want .csv)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	t, err := source.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return t, cache.Hash(data), nil
}

// tableHash hashes the column names and values of t in table order.
func tableHash(t *table.Table) (string, error) {
	cols := t.Columns()
	values := make([]any, len(cols))
	for i, name := range cols {
		values[i] = t.Column(name)
	}
	data, err := json.Marshal([]any{cols, values})
	if err != nil {
		return "", fmt.Errorf("hash table: %w", err)
	}
	return cache.Hash(data), nil
}
