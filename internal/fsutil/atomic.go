// Package fsutil contains small filesystem helpers shared by storage and
// backup code.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces the file at path with data. The bytes are
// written to a temp file in the same directory, fsynced, and renamed into
// place so readers never observe a partial write.
//
// Rename-over-existing is atomic on Unix. Windows refuses it, so there we
// remove the destination first; not atomic, but the closest available.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	writeErr := func() error {
		if err := tmp.Chmod(perm); err != nil {
			return fmt.Errorf("chmod %s: %w", tmpPath, err)
		}
		if _, err := tmp.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", tmpPath, err)
		}
		if err := tmp.Sync(); err != nil {
			return fmt.Errorf("fsync %s: %w", tmpPath, err)
		}
		return nil
	}()
	closeErr := tmp.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS == "windows" && removeThenRename(tmpPath, path) {
			syncDir(dir)
			return nil
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}

	syncDir(dir)
	return nil
}

// BestEffortBackup copies the current contents of path to path+".bak".
// Failures are swallowed; the backup is a convenience, never a requirement
// of the calling write.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = WriteFileAtomic(path+".bak", data, perm)
}

func removeThenRename(tmpPath, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if err := os.Remove(path); err != nil {
		return false
	}
	return os.Rename(tmpPath, path) == nil
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
