package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// DumpDocuments serializes docs as one compact JSON array and replaces the
// file at path with it
func DumpDocuments(path string, docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}

	data, err := marshalCompact(docs)
	if err != nil {
		return fmt.Errorf("%w: failed to encode collection '%s': %v", domain.ErrIO, path, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: failed to write collection '%s': %v", domain.ErrIO, path, err)
	}
	return nil
}

// LoadDocuments reads the collection stored at path. The boolean is false
// when the file does not exist, which is not an error.
func LoadDocuments(path string) ([]domain.Document, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: failed to read collection '%s': %v", domain.ErrIO, path, err)
	}

	docs, err := decodeDocuments(path, data)
	if err != nil {
		return nil, true, err
	}
	return docs, true, nil
}

func decodeDocuments(path string, data []byte) ([]domain.Document, error) {
	root, err := parseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: collection '%s': %v", domain.ErrParse, path, err)
	}

	items, ok := root.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: collection '%s' is not a JSON array", domain.ErrFormat, path)
	}

	docs := make([]domain.Document, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: collection '%s' element %d is not an object", domain.ErrFormat, path, i)
		}
		docs = append(docs, domain.Document(obj))
	}
	return docs, nil
}

// parseInsertPayload accepts one JSON object or an array of JSON objects
func parseInsertPayload(payload []byte) ([]domain.Document, error) {
	value, err := parseJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse document: %v", domain.ErrMalformedPayload, err)
	}

	switch v := value.(type) {
	case map[string]interface{}:
		return []domain.Document{domain.Document(v)}, nil
	case []interface{}:
		docs := make([]domain.Document, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: element %d is not a JSON object", domain.ErrMalformedPayload, i)
			}
			docs = append(docs, domain.Document(obj))
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("%w: document must be a JSON object or array of objects", domain.ErrMalformedPayload)
	}
}

// parseJSON decodes exactly one JSON value, keeping numbers as json.Number
func parseJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return value, nil
}
