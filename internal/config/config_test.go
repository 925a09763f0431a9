package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("empty config should not validate")
	}
	if err := (Config{ReportPath: "report.json"}).Validate(); err != nil {
		t.Errorf("local config: %v", err)
	}
	if err := (Config{Owner: "o", Repo: "r", RunID: 7}).Validate(); err != nil {
		t.Errorf("remote config: %v", err)
	}
	if err := (Config{RunID: 7}).Validate(); err == nil {
		t.Error("-run without -R should not validate")
	}
}

func TestSplitRepo(t *testing.T) {
	owner, repo, err := SplitRepo("acme/web")
	if err != nil || owner != "acme" || repo != "web" {
		t.Fatalf("SplitRepo = %q/%q, %v", owner, repo, err)
	}
	for _, bad := range []string{"", "acme", "/web", "acme/"} {
		if _, _, err := SplitRepo(bad); err == nil {
			t.Errorf("SplitRepo(%q) should fail", bad)
		}
	}
}

func TestLoadFileAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := "report_path: /srv/report\nrepo: acme/web\ncache_size_mb: 100\ncache_ttl: 12h\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := f.Apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ReportPath != "/srv/report" {
		t.Errorf("ReportPath = %q", cfg.ReportPath)
	}
	if cfg.Owner != "acme" || cfg.Repo != "web" {
		t.Errorf("repo = %s/%s", cfg.Owner, cfg.Repo)
	}
	if cfg.CacheSizeMB != 100 {
		t.Errorf("CacheSizeMB = %d", cfg.CacheSizeMB)
	}
	if cfg.CacheTTL != 12*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
}

func TestApplyDoesNotOverrideFlags(t *testing.T) {
	f := File{ReportPath: "/from/file", CacheSizeMB: 100}
	cfg := Config{ReportPath: "/from/flag", CacheSizeMB: 250}
	if err := f.Apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ReportPath != "/from/flag" || cfg.CacheSizeMB != 250 {
		t.Errorf("flag values overridden: %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if f != (File{}) {
		t.Errorf("expected zero File, got %+v", f)
	}
}
