package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// Mutation is an action compiled against its payload, ready to be applied to
// every matched document of one update call
type Mutation struct {
	action domain.Action
	fields map[string]interface{} // add: every field; alter: exactly one
	key    string                 // drop and alter: target field
}

// CompileMutation validates data for action:
//   - add: data must be a JSON object; all its fields are copied in.
//   - drop: data must be a JSON string naming the field to remove.
//   - alter: data must be a JSON object; only its first field is used and its
//     value must not be null.
func CompileMutation(action domain.Action, data []byte) (*Mutation, error) {
	value, err := parseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid data format '%s': %v", domain.ErrMalformedPayload, data, err)
	}

	switch action {
	case domain.ActionAdd:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: add expects a JSON object, got '%s'", domain.ErrMalformedPayload, data)
		}
		return &Mutation{action: action, fields: obj}, nil

	case domain.ActionDrop:
		key, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: drop expects a JSON string, got '%s'", domain.ErrMalformedPayload, data)
		}
		return &Mutation{action: action, key: key}, nil

	case domain.ActionAlter:
		if _, ok := value.(map[string]interface{}); !ok {
			return nil, fmt.Errorf("%w: alter expects a JSON object, got '%s'", domain.ErrMalformedPayload, data)
		}
		key, newValue, err := firstField(data)
		if err != nil {
			return nil, err
		}
		switch newValue.(type) {
		case string, json.Number, bool, []interface{}, map[string]interface{}:
		default:
			return nil, fmt.Errorf("%w: unsupported value type for field '%s'", domain.ErrMalformedPayload, key)
		}
		return &Mutation{action: action, key: key, fields: map[string]interface{}{key: newValue}}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action)
	}
}

// firstField returns the first key/value pair of a JSON object in text order
func firstField(data []byte) (string, interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if !dec.More() {
		return "", nil, fmt.Errorf("%w: alter expects at least one field", domain.ErrMalformedPayload)
	}

	keyTok, err := dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	key, _ := keyTok.(string)

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return key, value, nil
}

// Action returns the compiled action
func (m *Mutation) Action() domain.Action {
	return m.action
}

// Apply transforms doc in place. Values are deep-copied so no two documents
// share nested objects or arrays.
func (m *Mutation) Apply(doc domain.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: cannot apply %s to a nil document", domain.ErrMalformedPayload, m.action)
	}

	switch m.action {
	case domain.ActionAdd:
		for k, v := range m.fields {
			doc[k] = cloneValue(v)
		}
	case domain.ActionDrop:
		delete(doc, m.key)
	case domain.ActionAlter:
		// alter only replaces fields the document already has
		if _, exists := doc[m.key]; exists {
			doc[m.key] = cloneValue(m.fields[m.key])
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrInvalidAction, m.action)
	}
	return nil
}
