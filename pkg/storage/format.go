package storage

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify a database snapshot
	MagicBytes = "PDBS"
	// Current version
	FormatVersion = 1
	// File extension for snapshots
	FileExtension = ".pdbs"
)

// FileHeader represents the header of a snapshot file
type FileHeader struct {
	Magic    [4]byte // "PDBS"
	Version  uint8   // Format version
	Flags    uint8   // Reserved for future use
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the snapshot header to the given writer
func WriteHeader(w io.Writer) error {
	header := FileHeader{
		Magic:    [4]byte{'P', 'D', 'B', 'S'},
		Version:  FormatVersion,
		Flags:    0,
		Reserved: [2]byte{0, 0},
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the snapshot header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate magic bytes
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	// Validate version
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// Snapshot is the msgpack payload of a snapshot file
type Snapshot struct {
	Database    string               `msgpack:"database"`
	Collections []SnapshotCollection `msgpack:"collections"`
}

// SnapshotCollection holds one collection's documents in order
type SnapshotCollection struct {
	Name      string                   `msgpack:"name"`
	Documents []map[string]interface{} `msgpack:"documents"`
}
