// Package document loads YAML and JSON inputs into plain object graphs
// (map[string]any, []any and scalars) that the diff engine can walk.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a file and decodes every document in it. A YAML stream
// may contain multiple documents separated by "---"; JSON files decode
// as a single document (JSON is a YAML subset).
func Load(path string) ([]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer file.Close()

	docs, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return docs, nil
}

// Decode reads every document from r in stream order
func Decode(r io.Reader) ([]any, error) {
	var docs []any
	dec := yaml.NewDecoder(r)
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
