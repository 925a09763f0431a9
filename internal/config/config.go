package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// ReportPath points at a report directory, a report.json file, or a
	// zipped report export on local disk.
	ReportPath string

	// Remote fetch: report artifact from a GitHub Actions run.
	Owner        string
	Repo         string
	RunID        int64
	ArtifactName string

	CacheSizeMB int
	CacheTTL    time.Duration
}

// File holds the optional on-disk defaults, merged under flags.
type File struct {
	ReportPath   string `yaml:"report_path"`
	Repo         string `yaml:"repo"` // owner/repo
	ArtifactName string `yaml:"artifact_name"`
	CacheSizeMB  int    `yaml:"cache_size_mb"`
	CacheTTL     string `yaml:"cache_ttl"`
}

// DefaultPath returns the config file location under the user config
// dir, or "" when that cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reportdeck", "config.yml")
}

// LoadFile reads a YAML config file. A missing file is not an error;
// it just yields zero defaults.
func LoadFile(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Apply fills unset Config fields from the file's defaults.
func (f File) Apply(c *Config) error {
	if c.ReportPath == "" {
		c.ReportPath = f.ReportPath
	}
	if c.Owner == "" && c.Repo == "" && f.Repo != "" {
		owner, repo, err := SplitRepo(f.Repo)
		if err != nil {
			return err
		}
		c.Owner, c.Repo = owner, repo
	}
	if c.ArtifactName == "" {
		c.ArtifactName = f.ArtifactName
	}
	if c.CacheSizeMB == 0 && f.CacheSizeMB > 0 {
		c.CacheSizeMB = f.CacheSizeMB
	}
	if c.CacheTTL == 0 && f.CacheTTL != "" {
		ttl, err := time.ParseDuration(f.CacheTTL)
		if err != nil {
			return fmt.Errorf("cache_ttl: %w", err)
		}
		c.CacheTTL = ttl
	}
	return nil
}

// SplitRepo parses "owner/repo".
func SplitRepo(nwo string) (string, string, error) {
	for i := 0; i < len(nwo); i++ {
		if nwo[i] == '/' {
			owner, repo := nwo[:i], nwo[i+1:]
			if owner == "" || repo == "" {
				break
			}
			return owner, repo, nil
		}
	}
	return "", "", fmt.Errorf("repo must be in owner/repo format, got %q", nwo)
}

func (c Config) RepoNWO() string {
	return fmt.Sprintf("%s/%s", c.Owner, c.Repo)
}

func (c Config) Remote() bool {
	return c.RunID > 0
}

func (c Config) Validate() error {
	if c.ReportPath == "" && !c.Remote() {
		return fmt.Errorf("a report is required: pass -report PATH or -R owner/repo -run ID")
	}
	if c.Remote() && (c.Owner == "" || c.Repo == "") {
		return fmt.Errorf("-run requires -R owner/repo")
	}
	return nil
}
