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
	"context"
	"encoding/json"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// LockFileName is written next to the configuration file.
const LockFileName = ".assetrc.lock"

// 🔒 LockEntry records how one output was produced
type LockEntry struct {
	App      string   `json:"app"`
	Task     string   `json:"task"`
	Sources  []string `json:"sources"`
	Checksum string   `json:"checksum"`
}

// 🔒 LockFile is the record of the last build, keyed by output path
type LockFile struct {
	ConfigHash  string               `json:"config_hash"`
	LastUpdated time.Time            `json:"last_updated"`
	Outputs     map[string]LockEntry `json:"outputs"`
}

func newLockFile() *LockFile {
	return &LockFile{Outputs: make(map[string]LockEntry)}
}

// 📖 LoadLock reads the lock file below the base directory. A missing lock
// file is an empty lock.
func (m *Manager) LoadLock(ctx context.Context) (*LockFile, error) {
	lock := newLockFile()

	data, err := os.ReadFile(m.getAbsPath(LockFileName))
	if os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Msg("no lock file found")
	} else if err != nil {
		return nil, errors.Errorf("reading lock file: %w", err)
	} else {
		if err := json.Unmarshal(data, lock); err != nil {
			return nil, errors.Errorf("parsing lock file: %w", err)
		}
		if lock.Outputs == nil {
			lock.Outputs = make(map[string]LockEntry)
		}
	}

	m.mu.Lock()
	m.lock = lock
	m.mu.Unlock()
	return lock, nil
}

// Orphans lists outputs the previous build produced for apps that the
// current run did not produce again, sorted by path.
func (m *Manager) Orphans(apps []string) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orphans []FileInfo
	for path, entry := range m.lock.Outputs {
		if !slices.Contains(apps, entry.App) {
			continue
		}
		if info, ok := m.files[path]; ok && info.Status != StatusDeleted {
			continue
		}
		orphans = append(orphans, FileInfo{
			Path:     path,
			App:      entry.App,
			Task:     entry.Task,
			Sources:  entry.Sources,
			Checksum: entry.Checksum,
		})
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Path < orphans[j].Path })
	return orphans
}

// ForgetApp drops every lock entry of app.
func (m *Manager) ForgetApp(app string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for path, entry := range m.lock.Outputs {
		if entry.App == app {
			delete(m.lock.Outputs, path)
		}
	}
}

// ConfigDrift reports whether hash differs from the hash of the last build.
// Without a previous build there is nothing to drift from.
func (m *Manager) ConfigDrift(hash string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.lock.Outputs) > 0 && m.lock.ConfigHash != hash
}

// 💾 SaveLock replaces the entries of apps with the outputs tracked in this
// run and writes the lock file. Entries of other apps are kept.
func (m *Manager) SaveLock(ctx context.Context, configHash string, apps []string) error {
	m.mu.Lock()
	next := newLockFile()
	next.ConfigHash = configHash
	next.LastUpdated = time.Now().UTC()
	for path, entry := range m.lock.Outputs {
		if !slices.Contains(apps, entry.App) {
			next.Outputs[path] = entry
		}
	}
	for path, info := range m.files {
		if info.Status == StatusDeleted || info.Error != nil {
			continue
		}
		next.Outputs[path] = LockEntry{
			App:      info.App,
			Task:     info.Task,
			Sources:  info.Sources,
			Checksum: info.Checksum,
		}
	}
	m.lock = next
	m.mu.Unlock()

	if m.opts.DryRun {
		return nil
	}

	data, err := json.MarshalIndent(next, "", "\t")
	if err != nil {
		return errors.Errorf("encoding lock file: %w", err)
	}
	if err := m.WriteFileAtomic(ctx, LockFileName, append(data, '\n')); err != nil {
		return errors.Errorf("writing lock file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("outputs", len(next.Outputs)).Msg("lock file saved")
	return nil
}
