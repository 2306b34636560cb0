package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readJSON decodes path into v. A missing file is not an error.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(ErrMsgReadFailed, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf(ErrMsgDecodeFailed, path, err)
	}
	return true, nil
}

// writeJSON atomically replaces path with the encoding of v
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeFailed, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf(ErrMsgWriteFailed, path, err)
	}
	return nil
}
