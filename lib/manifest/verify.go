// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Mismatch is one output whose file no longer matches the manifest.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (m Mismatch) String() string {
	return m.Path + ": " + m.Reason
}

// Verify re-hashes every output listed in the manifest at path and
// returns the ones that are missing or differ. Relative output paths
// resolve against the manifest's directory. The error is non-nil only
// when the manifest itself cannot be read.
func Verify(path string) ([]Mismatch, error) {
	manifest, err := Read(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)

	var mismatches []Mismatch
	for _, output := range manifest.Outputs {
		location := filepath.FromSlash(output.Path)
		if !filepath.IsAbs(location) {
			location = filepath.Join(base, location)
		}
		if reason := check(location, output); reason != "" {
			mismatches = append(mismatches, Mismatch{Path: output.Path, Reason: reason})
		}
	}
	return mismatches, nil
}

func check(location string, output Output) string {
	data, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return "missing"
	}
	if err != nil {
		return err.Error()
	}
	if int64(len(data)) != output.Size {
		return fmt.Sprintf("size %d, manifest says %d", len(data), output.Size)
	}
	if digest := HashOutput(data); digest != output.Digest {
		return fmt.Sprintf("digest %s, manifest says %s", digest, output.Digest)
	}
	return ""
}
