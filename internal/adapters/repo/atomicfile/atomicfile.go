// Package atomicfile holds the write path shared by the file-backed baseline
// stores: a process-wide lock per resolved path and temp-file + rename writes.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	FileMode = 0o600
	DirMode  = 0o700
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// NormalizePath resolves path to a clean absolute path so that two stores
// pointed at the same file share one lock.
func NormalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve baselines path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func LockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// Read returns the file content, or nil without error when it does not exist.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read baselines file: %w", err)
	}
	return data, nil
}

// Write replaces path with data. tempPattern names the temp file created next
// to path.
func Write(path, tempPattern string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("create baselines directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp baselines file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp baselines file: %w", err)
	}

	if err := tempFile.Chmod(FileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp baselines file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp baselines file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace baselines file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, FileMode); err != nil {
		return fmt.Errorf("chmod baselines file: %w", err)
	}

	return nil
}
