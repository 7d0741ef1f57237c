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

// Registry is an ordered name -> path mapping persisted as one flat JSON
// object. It backs both the global database registry and each database's
// collection registry. Every mutation rewrites the whole file.
type Registry struct {
	path  string
	names []string
	paths map[string]string
}

// LoadRegistry reads the registry stored at path. A missing file yields an
// empty registry bound to path.
func LoadRegistry(path string) (*Registry, error) {
	reg := &Registry{
		path:  path,
		paths: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("%w: failed to read registry '%s': %v", domain.ErrIO, path, err)
	}

	if err := reg.decode(data); err != nil {
		return nil, err
	}
	return reg, nil
}

// decode parses data token by token so entries keep their on-disk order
func (r *Registry) decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: registry '%s': %v", domain.ErrParse, r.path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: registry '%s' is not a JSON object", domain.ErrParse, r.path)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: registry '%s': %v", domain.ErrParse, r.path, err)
		}
		name, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: registry '%s': %v", domain.ErrParse, r.path, err)
		}
		path, ok := valTok.(string)
		if !ok {
			return fmt.Errorf("%w: registry '%s' entry '%s' is not a string", domain.ErrParse, r.path, name)
		}

		if _, seen := r.paths[name]; !seen {
			r.names = append(r.names, name)
		}
		r.paths[name] = path
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: registry '%s': %v", domain.ErrParse, r.path, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: registry '%s' has trailing data", domain.ErrParse, r.path)
	}
	return nil
}

// encode renders the registry as compact JSON in insertion order
func (r *Registry) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCompact(name)
		if err != nil {
			return nil, err
		}
		value, err := marshalCompact(r.paths[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// File returns the path the registry is persisted to
func (r *Registry) File() string {
	return r.path
}

// Exists reports whether name is registered
func (r *Registry) Exists(name string) bool {
	_, ok := r.paths[name]
	return ok
}

// Path returns the path registered under name
func (r *Registry) Path(name string) (string, bool) {
	path, ok := r.paths[name]
	return path, ok
}

// Names returns registered names in insertion order
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.names)
}

// Add registers name -> path and persists the registry
func (r *Registry) Add(name, path string) error {
	if r.Exists(name) {
		return fmt.Errorf("%w: entry '%s' in registry '%s'", domain.ErrAlreadyExists, name, r.path)
	}

	r.names = append(r.names, name)
	r.paths[name] = path

	if err := r.save(); err != nil {
		r.names = r.names[:len(r.names)-1]
		delete(r.paths, name)
		return err
	}
	return nil
}

// Remove deletes name and persists the registry
func (r *Registry) Remove(name string) error {
	if !r.Exists(name) {
		return fmt.Errorf("%w: entry '%s' in registry '%s'", domain.ErrNotFound, name, r.path)
	}

	names := make([]string, 0, len(r.names)-1)
	for _, n := range r.names {
		if n != name {
			names = append(names, n)
		}
	}
	previous := r.names
	path := r.paths[name]
	r.names = names
	delete(r.paths, name)

	if err := r.save(); err != nil {
		r.names = previous
		r.paths[name] = path
		return err
	}
	return nil
}

func (r *Registry) save() error {
	data, err := r.encode()
	if err != nil {
		return fmt.Errorf("%w: failed to encode registry '%s': %v", domain.ErrIO, r.path, err)
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: failed to write registry '%s': %v", domain.ErrIO, r.path, err)
	}
	return nil
}
