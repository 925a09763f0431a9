package cache

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ReportCache stores extracted remote report artifacts on disk so a
// run's report is only downloaded once per TTL window.
type ReportCache struct {
	dir     string
	maxSize int64         // max total cache size in bytes
	ttl     time.Duration // cache entry TTL
}

// Meta stores metadata about a cached report entry.
type Meta struct {
	RunID        int64     `json:"run_id"`
	ArtifactID   int64     `json:"artifact_id"`
	ArtifactName string    `json:"artifact_name"`
	Repo         string    `json:"repo"`
	StoredAt     time.Time `json:"stored_at"`
}

func NewReportCache(dir string, maxSizeMB int, ttl time.Duration) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report cache dir: %w", err)
	}
	return &ReportCache{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
	}, nil
}

func (rc *ReportCache) runDir(runID int64) string {
	return filepath.Join(rc.dir, fmt.Sprintf("run-%d", runID))
}

// Dir returns the extraction directory for a cached run, and whether a
// fresh entry exists there.
func (rc *ReportCache) Dir(runID int64) (string, bool) {
	dir := rc.runDir(runID)
	info, err := os.Stat(dir)
	if err != nil {
		return dir, false
	}
	return dir, info.IsDir() && time.Since(info.ModTime()) < rc.ttl
}

// Store extracts an artifact zip stream into the run's cache directory
// and returns that directory.
func (rc *ReportCache) Store(runID int64, zipData io.Reader, meta Meta) (string, error) {
	data, err := io.ReadAll(zipData)
	if err != nil {
		return "", fmt.Errorf("read zip data: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	dir := rc.runDir(runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		localPath := filepath.Join(dir, filepath.Clean(f.Name))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return "", err
		}
		in, err := f.Open()
		if err != nil {
			return "", err
		}
		out, err := os.Create(localPath)
		if err != nil {
			in.Close()
			return "", err
		}
		_, err = io.Copy(out, in)
		in.Close()
		out.Close()
		if err != nil {
			return "", err
		}
	}

	if err := rc.writeMeta(runID, meta); err != nil {
		return "", err
	}
	return dir, nil
}

func (rc *ReportCache) writeMeta(runID int64, meta Meta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(rc.runDir(runID), "meta.json"), data, 0o644)
}

// ReadMeta reads meta.json from a cache entry.
func (rc *ReportCache) ReadMeta(runID int64) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(rc.runDir(runID), "meta.json"))
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Evict removes expired entries, then the oldest files until the cache
// fits under its size cap.
func (rc *ReportCache) Evict() error {
	type entry struct {
		path    string
		modTime time.Time
		size    int64
	}

	var entries []entry
	var totalSize int64

	err := filepath.Walk(rc.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		entries = append(entries, entry{path: path, modTime: info.ModTime(), size: info.Size()})
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return err
	}

	now := time.Now()
	remaining := entries[:0]
	for _, e := range entries {
		if now.Sub(e.modTime) > rc.ttl {
			os.Remove(e.path)
			totalSize -= e.size
		} else {
			remaining = append(remaining, e)
		}
	}
	entries = remaining

	if totalSize > rc.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].modTime.Before(entries[j].modTime)
		})
		for _, e := range entries {
			if totalSize <= rc.maxSize {
				break
			}
			os.Remove(e.path)
			totalSize -= e.size
		}
	}
	return nil
}

// DeleteEntry removes a single cached run.
func (rc *ReportCache) DeleteEntry(runID int64) error {
	return os.RemoveAll(rc.runDir(runID))
}

// TotalSize returns total cache size in bytes.
func (rc *ReportCache) TotalSize() (int64, error) {
	var total int64
	err := filepath.Walk(rc.dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	return total, nil
}
