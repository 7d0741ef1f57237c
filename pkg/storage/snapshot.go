package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// maxSnapshotSize bounds the declared uncompressed size of an imported snapshot
const maxSnapshotSize = 1 << 30

// ExportDatabase writes every collection of a database, in registry order, as
// one snapshot: header, uncompressed length, then an LZ4 block of msgpack.
func (se *StorageEngine) ExportDatabase(name string, w io.Writer) error {
	collections, err := se.ListCollections(name)
	if err != nil {
		return err
	}

	snapshot := Snapshot{Database: name}
	for _, collName := range collections {
		docs, _, err := se.loadCollection(name, collName)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("WARN: Collection file for '%s.%s' is missing, exporting it empty", name, collName)
			docs, err = nil, nil
		}
		if err != nil {
			return fmt.Errorf("failed to export collection '%s': %w", collName, err)
		}
		coll := SnapshotCollection{
			Name:      collName,
			Documents: make([]map[string]interface{}, len(docs)),
		}
		for i, doc := range docs {
			value, err := toSnapshotValue(map[string]interface{}(doc))
			if err != nil {
				return fmt.Errorf("failed to export collection '%s': %w", collName, err)
			}
			coll.Documents[i] = value.(map[string]interface{})
		}
		snapshot.Collections = append(snapshot.Collections, coll)
	}

	msgpackData, err := msgpack.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	compressedData := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, compressedData, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	stored := n == 0 || n >= len(msgpackData)
	if stored {
		// incompressible input: store it raw and flag it in the length word
		compressedData = msgpackData
	} else {
		compressedData = compressedData[:n]
	}

	if err := WriteHeader(w); err != nil {
		return fmt.Errorf("%w: failed to write header: %v", domain.ErrIO, err)
	}
	rawSize := uint32(len(msgpackData))
	if stored {
		rawSize |= 1 << 31
	}
	if err := binary.Write(w, binary.LittleEndian, rawSize); err != nil {
		return fmt.Errorf("%w: failed to write size: %v", domain.ErrIO, err)
	}
	if _, err := w.Write(compressedData); err != nil {
		return fmt.Errorf("%w: failed to write compressed data: %v", domain.ErrIO, err)
	}

	log.Printf("INFO: Exported database '%s' (%d collections, %d bytes compressed)", name, len(collections), len(compressedData))
	return nil
}

// ImportDatabase creates database name from a snapshot produced by
// ExportDatabase. The database must not exist yet.
func (se *StorageEngine) ImportDatabase(name string, r io.Reader) error {
	snapshot, err := readSnapshot(r)
	if err != nil {
		return err
	}

	if err := se.CreateDatabase(name); err != nil {
		return err
	}

	for _, coll := range snapshot.Collections {
		if err := se.CreateCollection(name, coll.Name); err != nil {
			return fmt.Errorf("failed to import collection '%s': %w", coll.Name, err)
		}
		path, err := se.layout.CollectionFile(name, coll.Name)
		if err != nil {
			return err
		}
		docs := make([]domain.Document, len(coll.Documents))
		for i, doc := range coll.Documents {
			docs[i] = domain.Document(fromSnapshotValue(doc).(map[string]interface{}))
		}
		if err := DumpDocuments(path, docs); err != nil {
			return fmt.Errorf("failed to import collection '%s': %w", coll.Name, err)
		}
		se.debugf("Imported %d documents into '%s.%s'", len(docs), name, coll.Name)
	}

	log.Printf("INFO: Imported database '%s' from snapshot of '%s' (%d collections)", name, snapshot.Database, len(snapshot.Collections))
	return nil
}

func readSnapshot(r io.Reader) (*Snapshot, error) {
	if _, err := ReadHeader(r); err != nil {
		return nil, fmt.Errorf("%w: invalid snapshot header: %v", domain.ErrFormat, err)
	}

	var rawSize uint32
	if err := binary.Read(r, binary.LittleEndian, &rawSize); err != nil {
		return nil, fmt.Errorf("%w: failed to read snapshot size: %v", domain.ErrFormat, err)
	}
	stored := rawSize&(1<<31) != 0
	rawSize &^= 1 << 31
	if rawSize > maxSnapshotSize {
		return nil, fmt.Errorf("%w: snapshot declares %d bytes, limit is %d", domain.ErrFormat, rawSize, maxSnapshotSize)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read snapshot: %v", domain.ErrIO, err)
	}

	msgpackData := body
	if !stored {
		msgpackData = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(body, msgpackData)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decompress snapshot: %v", domain.ErrParse, err)
		}
		msgpackData = msgpackData[:n]
	}

	var snapshot Snapshot
	if err := msgpack.Unmarshal(msgpackData, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to decode MessagePack: %v", domain.ErrParse, err)
	}
	return &snapshot, nil
}

// toSnapshotValue replaces json.Number with int64 or float64 so msgpack
// stores numbers as numbers. Numbers outside the float64 range are rejected.
func toSnapshotValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s cannot be stored in a snapshot", domain.ErrFormat, v)
		}
		return f, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			converted, err := toSnapshotValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case domain.Document:
		return toSnapshotValue(map[string]interface{}(v))
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			converted, err := toSnapshotValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}

// fromSnapshotValue turns every decoded msgpack number back into json.Number
func fromSnapshotValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = fromSnapshotValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = fromSnapshotValue(item)
		}
		return out
	case int8, int16, int32, int64, int:
		return json.Number(strconv.FormatInt(toInt64(v), 10))
	case uint8, uint16, uint32, uint64, uint:
		u := toUint64(v)
		return json.Number(strconv.FormatUint(u, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		return v
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return n.(int64)
	}
}

func toUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint:
		return uint64(n)
	default:
		return n.(uint64)
	}
}
