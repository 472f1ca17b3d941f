// Package persistence stores game snapshots in SQLite as versioned,
// zstd-compressed JSON blobs.
package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/jberndt/longwinter/internal/engine"
)

// Blob format: 4-byte magic, 2-byte format version, zstd-compressed
// JSON payload. The version gates decoding so an old binary refuses a
// newer save instead of misreading it.
var blobMagic = [4]byte{'L', 'W', 'S', '1'}

const blobVersion uint16 = 1

// Encode serializes a snapshot into a compressed save blob.
func Encode(snap *engine.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(blobMagic[:])
	binary.Write(&buf, binary.LittleEndian, blobVersion)

	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a save blob back into a snapshot.
func Decode(blob []byte) (*engine.Snapshot, error) {
	if len(blob) < 6 {
		return nil, fmt.Errorf("decode snapshot: blob too short")
	}
	if !bytes.Equal(blob[:4], blobMagic[:]) {
		return nil, fmt.Errorf("decode snapshot: bad magic")
	}
	version := binary.LittleEndian.Uint16(blob[4:6])
	if version != blobVersion {
		return nil, fmt.Errorf("decode snapshot: unsupported format version %d", version)
	}

	r, err := zstd.NewReader(bytes.NewReader(blob[6:]))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer r.Close()

	var snap engine.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
