// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/tagforge/lib/codec"
)

// magic starts every manifest file.
var magic = [4]byte{'T', 'F', 'M', '1'}

// maxBodySize bounds the uncompressed body a manifest may claim.
const maxBodySize = 64 << 20

// Manifest describes one generation run.
type Manifest struct {
	// Version is the tagforge version that produced the run.
	Version string `json:"version"`

	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// Input is one schema document, in load order.
type Input struct {
	// Name is the document name (the file's base name up to the first
	// dot), which is how generated sources refer to it.
	Name   string `json:"name"`
	Digest Hash   `json:"digest"`
}

// Output is one generated file, in write order.
type Output struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest Hash   `json:"digest"`
}

// Builder accumulates a manifest as files are read and written.
type Builder struct {
	manifest Manifest
}

// NewBuilder starts a manifest for the given tool version.
func NewBuilder(version string) *Builder {
	return &Builder{manifest: Manifest{Version: version}}
}

// AddInput records a schema document.
func (b *Builder) AddInput(name string, data []byte) {
	b.manifest.Inputs = append(b.manifest.Inputs, Input{Name: name, Digest: HashInput(data)})
}

// AddOutput records a generated file.
func (b *Builder) AddOutput(path string, data []byte) {
	b.manifest.Outputs = append(b.manifest.Outputs, Output{
		Path:   path,
		Size:   int64(len(data)),
		Digest: HashOutput(data),
	})
}

// Manifest returns the accumulated manifest.
func (b *Builder) Manifest() *Manifest {
	return &b.manifest
}

// Encode serializes a manifest. A body that does not shrink under the
// requested compression is stored uncompressed.
func Encode(manifest *Manifest, tag CompressionTag) ([]byte, error) {
	body, err := codec.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("manifest body is %d bytes, limit is %d", len(body), maxBodySize)
	}

	compressed, err := compress(body, tag)
	if errors.Is(err, errIncompressible) {
		tag, compressed = CompressionNone, body
	} else if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	buffer.Write(magic[:])
	buffer.WriteByte(byte(tag))
	if tag != CompressionNone {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(body)))
		buffer.Write(length[:])
	}
	buffer.Write(compressed)
	return buffer.Bytes(), nil
}

// Decode parses a manifest produced by [Encode].
func Decode(data []byte) (*Manifest, error) {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, errors.New("not a tagforge manifest (bad magic)")
	}
	tag := CompressionTag(data[len(magic)])
	rest := data[len(magic)+1:]

	body := rest
	if tag != CompressionNone {
		if len(rest) < 4 {
			return nil, errors.New("truncated manifest header")
		}
		size := binary.BigEndian.Uint32(rest[:4])
		if size > maxBodySize || uint64(size) > math.MaxInt {
			return nil, fmt.Errorf("manifest claims a %d byte body, limit is %d", size, maxBodySize)
		}
		var err error
		body, err = decompress(rest[4:], tag, int(size))
		if err != nil {
			return nil, fmt.Errorf("decompressing manifest (%s): %w", tag, err)
		}
	}

	var manifest Manifest
	if err := codec.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &manifest, nil
}

// Write stores the manifest at path. Output paths are rewritten relative
// to the manifest's directory where possible.
func Write(path string, manifest *Manifest, tag CompressionTag) error {
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolving manifest directory: %w", err)
	}
	relative := *manifest
	relative.Outputs = make([]Output, len(manifest.Outputs))
	for index, output := range manifest.Outputs {
		output.Path = relativeTo(base, output.Path)
		relative.Outputs[index] = output
	}

	data, err := Encode(&relative, tag)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	manifest, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

func relativeTo(base, path string) string {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	relative, err := filepath.Rel(base, absolute)
	if err != nil {
		return filepath.ToSlash(absolute)
	}
	return filepath.ToSlash(relative)
}
