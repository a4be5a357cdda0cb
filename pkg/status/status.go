// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the current state of a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File doesn't exist in destination
	StatusModified             // File exists but content differs
	StatusUnchanged            // File exists and content matches
	StatusDeleted              // File was deleted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about an output file
type FileInfo struct {
	Path     string     // Path relative to the project root, slash separated
	App      string     // Application the file belongs to
	Task     string     // Task that produced the file
	Sources  []string   // Source files the output was built from
	Status   FileStatus // Current status
	Size     int64      // File size in bytes
	Checksum string     // Content hash for diff detection
	Error    error      // Any error associated with this file
}

// 🔧 Options control how the manager touches the disk
type Options struct {
	DryRun bool // classify outputs without writing or deleting anything
	Force  bool // rewrite outputs even when their content is unchanged
}

// 🔧 Manager performs output file I/O below a base directory and tracks
// the status of every output it has seen
type Manager struct {
	baseDir   string        // Base directory for all operations
	formatter FileFormatter // Formatter for status messages
	opts      Options

	// Status tracking
	mu        sync.RWMutex
	files     map[string]FileInfo
	lock      *LockFile
	pathLocks sync.Map // path -> *sync.Mutex

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(baseDir string, opts Options) *Manager {
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		formatter: NewDefaultFileFormatter(),
		opts:      opts,
		files:     make(map[string]FileInfo),
		lock:      newLockFile(),
	}
}

// DryRun reports whether the manager only classifies outputs.
func (m *Manager) DryRun() bool {
	return m.opts.DryRun
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// lockPath serialises work on one output path across goroutines.
func (m *Manager) lockPath(path string) func() {
	v, _ := m.pathLocks.LoadOrStore(path, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// 📝 PutOutput classifies content against what is on disk at info.Path and
// writes it unless it is unchanged (or the manager is a dry run).
//
// Several apps may share an output path. The first put of a path wins; a
// later put with the same content reports the first status, a later put with
// different content is an error.
func (m *Manager) PutOutput(ctx context.Context, info FileInfo, content []byte) (FileStatus, error) {
	unlock := m.lockPath(info.Path)
	defer unlock()

	info.Checksum = calculateChecksum(content)
	info.Size = int64(len(content))
	info.Status = StatusNew

	if prev, err := m.GetFileInfo(ctx, info.Path); err == nil && prev.Status != StatusDeleted && prev.Error == nil {
		if prev.Checksum != info.Checksum {
			return StatusUnknown, errors.Errorf("output %s: %s/%s and %s/%s produce different content", info.Path, prev.App, prev.Task, info.App, info.Task)
		}
		zerolog.Ctx(ctx).Debug().Str("path", info.Path).Str("app", info.App).Str("owner", prev.App).Msg("output already written")
		return prev.Status, nil
	}

	existing, err := os.ReadFile(m.getAbsPath(info.Path))
	switch {
	case err == nil && bytes.Equal(existing, content):
		info.Status = StatusUnchanged
	case err == nil:
		info.Status = StatusModified
	case !os.IsNotExist(err):
		return StatusUnknown, errors.Errorf("reading existing output: %w", err)
	}

	write := info.Status != StatusUnchanged || m.opts.Force
	if write && !m.opts.DryRun {
		if err := m.WriteFile(ctx, info.Path, content); err != nil {
			info.Error = err
			m.TrackFile(ctx, info.Path, info)
			return StatusUnknown, errors.Errorf("writing output %s: %w", info.Path, err)
		}
	}

	m.TrackFile(ctx, info.Path, info)
	return info.Status, nil
}

// 🗑️ RemoveOutput deletes a previously built output. A file that is already
// gone is not an error.
func (m *Manager) RemoveOutput(ctx context.Context, info FileInfo) error {
	unlock := m.lockPath(info.Path)
	defer unlock()

	info.Status = StatusDeleted
	if !m.opts.DryRun {
		if err := m.DeleteFile(ctx, info.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	m.TrackFile(ctx, info.Path, info)
	return nil
}

// FileManager operations

func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	// Write file atomically
	return m.WriteFileAtomic(ctx, path, content)
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	// Write to a temp file unique to this write
	tmp, err := os.CreateTemp(filepath.Dir(absPath), filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(m.getAbsPath(path)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// RemoveDir removes path and everything below it. In a dry run nothing is
// removed.
func (m *Manager) RemoveDir(ctx context.Context, path string) error {
	if m.opts.DryRun {
		return nil
	}
	if err := os.RemoveAll(m.getAbsPath(path)); err != nil {
		return errors.Errorf("removing directory: %w", err)
	}
	return nil
}

// StatusReporter operations

func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = info
	msg := FormatInfo(m.formatter, info)
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("app", info.App).Msg(msg)
}

func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every tracked file sorted by path.
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Changed reports whether any tracked file is new, modified or deleted.
func (m *Manager) Changed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, info := range m.files {
		switch info.Status {
		case StatusNew, StatusModified, StatusDeleted:
			return true
		}
	}
	return false
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total += total
	msg := m.formatter.FormatProgress(m.processed, m.total)
	zerolog.Ctx(ctx).Debug().Int("total", m.total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed += delta
	msg := m.formatter.FormatProgress(m.processed, m.total)
	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}
