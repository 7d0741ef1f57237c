package storage

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf))
	assert.Equal(t, []byte{'P', 'D', 'B', 'S', FormatVersion, 0, 0, 0}, buf.Bytes())

	header, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, MagicBytes, string(header.Magic[:]))
	assert.EqualValues(t, FormatVersion, header.Version)
	assert.Zero(t, buf.Len(), "header must consume exactly its own bytes")
}

func TestHeader_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		message string
	}{
		{"foreign magic", []byte{'G', 'O', 'D', 'B', FormatVersion, 0, 0, 0}, "invalid file format"},
		{"future version", []byte{'P', 'D', 'B', 'S', 2, 0, 0, 0}, "unsupported file version"},
		{"truncated", []byte{'P', 'D', 'B'}, "failed to read header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestHeader_IgnoresFlagsAndReserved(t *testing.T) {
	header, err := ReadHeader(bytes.NewReader([]byte{'P', 'D', 'B', 'S', FormatVersion, 0x42, 0x12, 0x34}))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), header.Flags)
	assert.Equal(t, [2]byte{0x12, 0x34}, header.Reserved)
}

func TestSnapshot_IncompressibleDataStoredRaw(t *testing.T) {
	random := make([]byte, 8192)
	rand.New(rand.NewSource(7)).Read(random)
	blob := base64.StdEncoding.EncodeToString(random)

	engine := newTestEngine(t)
	newTestCollection(t, engine, "vault", "blobs", fmt.Sprintf(`{"blob":%q}`, blob))

	var buf bytes.Buffer
	require.NoError(t, engine.ExportDatabase("vault", &buf))

	var sizeWord uint32
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()[8:12]), binary.LittleEndian, &sizeWord))
	require.NotZero(t, sizeWord&(1<<31), "random data should be stored raw")
	assert.Equal(t, int(sizeWord&^(1<<31)), buf.Len()-12)

	snapshot, err := readSnapshot(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "vault", snapshot.Database)
	require.Len(t, snapshot.Collections, 1)
	require.Len(t, snapshot.Collections[0].Documents, 1)
	assert.Equal(t, blob, snapshot.Collections[0].Documents[0]["blob"])
}

func TestSnapshot_RawFlagWithCorruptBody(t *testing.T) {
	data := []byte{'P', 'D', 'B', 'S', FormatVersion, 0, 0, 0, 3, 0, 0, 0x80, 0xc1, 0xc1, 0xc1}

	_, err := readSnapshot(bytes.NewReader(data))
	assert.Error(t, err)
}
