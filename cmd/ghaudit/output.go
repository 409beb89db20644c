package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether path names a YAML snapshot.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// writeSnapshot encodes snap as YAML or indented JSON depending on the
// extension of path.
func writeSnapshot(path string, snap *ghaudit.EnterpriseSnapshot) error {
	return writeAtomically(path, func(w io.Writer) error {
		if isYAML(path) {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(snap); err != nil {
				return err
			}
			return enc.Close()
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	})
}

// readSnapshot decodes a snapshot written by writeSnapshot.
func readSnapshot(path string) (*ghaudit.EnterpriseSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		wrapped := errors.Wrap(err, code, "failed to read snapshot")
		return nil, errors.WithContext(wrapped, "path", path)
	}

	var snap ghaudit.EnterpriseSnapshot
	if isYAML(path) {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		wrapped := errors.Wrap(err, errors.CodeInvalidInput, "failed to decode snapshot")
		return nil, errors.WithContext(wrapped, "path", path)
	}

	return &snap, nil
}

// writeAtomically creates the parent directory of path and replaces path
// with whatever write produces. A failed write leaves any existing file
// untouched.
func writeAtomically(path string, write func(w io.Writer) error) error {
	fail := func(err error, message string) error {
		wrapped := errors.Wrap(err, errors.CodeInternal, message)
		return errors.WithContext(wrapped, "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err, "failed to create output directory")
	}

	t, err := renameio.TempFile(dir, path)
	if err != nil {
		return fail(err, "failed to create temporary file")
	}
	defer func() {
		_ = t.Cleanup()
	}()

	if err := t.Chmod(0o644); err != nil {
		return fail(err, "failed to set file mode")
	}

	w := bufio.NewWriter(t)
	if err := write(w); err != nil {
		return fail(err, "failed to write output")
	}
	if err := w.Flush(); err != nil {
		return fail(err, "failed to write output")
	}

	if err := t.CloseAtomicallyReplace(); err != nil {
		return fail(err, "failed to replace output file")
	}
	return nil
}
