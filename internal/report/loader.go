// Package report loads the pre-computed report data structure from
// disk. It accepts a report directory (containing report.json and a
// data/ attachment tree), a bare report.json path, or a zipped report
// export.
package report

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reportdeck/reportdeck/internal/model"
)

const reportFileName = "report.json"

// Load reads a report from path. The returned dir is the root for
// resolving attachment paths; for zip inputs it is the extraction
// directory.
func Load(path string) (*model.Report, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat report: %w", err)
	}

	switch {
	case info.IsDir():
		rep, err := loadFile(filepath.Join(path, reportFileName))
		return rep, path, err
	case strings.HasSuffix(path, ".zip"):
		return loadZip(path)
	default:
		rep, err := loadFile(path)
		return rep, filepath.Dir(path), err
	}
}

func loadFile(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Decode(data)
}

// Decode parses report JSON bytes.
func Decode(data []byte) (*model.Report, error) {
	var rep model.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &rep, nil
}

// loadZip extracts a zipped report export next to the zip and loads
// report.json from the extracted tree.
func loadZip(path string) (*model.Report, string, error) {
	dir := strings.TrimSuffix(path, ".zip") + ".extracted"
	if err := Extract(path, dir); err != nil {
		return nil, "", err
	}
	rep, err := loadFile(filepath.Join(dir, reportFileName))
	return rep, dir, err
}

// Extract unpacks a report zip into dir.
func Extract(zipPath, dir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open report zip: %w", err)
	}
	defer zr.Close()
	return extractAll(&zr.Reader, dir)
}

func extractAll(zr *zip.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create extract dir: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Clean(f.Name)
		if strings.HasPrefix(name, "..") {
			continue
		}
		localPath := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(localPath)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = out.ReadFrom(rc)
		rc.Close()
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// AttachmentBody returns a text attachment's content: the inline body
// when present, otherwise the file under the report directory.
func AttachmentBody(dir string, a model.Attachment) (string, error) {
	if a.Body != "" {
		return a.Body, nil
	}
	if a.Path == "" {
		return "", fmt.Errorf("attachment %q has no body or path", a.Name)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(a.Path)))
	if err != nil {
		return "", fmt.Errorf("read attachment %q: %w", a.Name, err)
	}
	return string(data), nil
}
