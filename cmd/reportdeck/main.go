package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reportdeck/reportdeck/internal/artifact"
	"github.com/reportdeck/reportdeck/internal/cache"
	"github.com/reportdeck/reportdeck/internal/config"
	"github.com/reportdeck/reportdeck/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	reportPath := flag.String("report", "", "Report directory, report.json, or report zip")
	repo := flag.String("R", "", "Repository in owner/repo format (for remote reports)")
	runID := flag.Int64("run", 0, "Workflow run ID to fetch the report artifact from")
	artifactName := flag.String("artifact", "", "Report artifact name (default: first containing \"report\")")
	cacheSizeMB := flag.Int("cache-size", 500, "Max report cache size in MB")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "Report cache TTL")
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("reportdeck", version)
		os.Exit(0)
	}

	// A bare path argument works too: reportdeck ./playwright-report
	if *reportPath == "" && flag.NArg() > 0 {
		*reportPath = flag.Arg(0)
	}

	cfg := config.Config{
		ReportPath:   *reportPath,
		RunID:        *runID,
		ArtifactName: *artifactName,
		CacheSizeMB:  *cacheSizeMB,
		CacheTTL:     *cacheTTL,
	}
	if *repo != "" {
		owner, name, err := config.SplitRepo(*repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Owner, cfg.Repo = owner, name
	}

	fileCfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := fileCfg.Apply(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	var client *artifact.Client
	var reportCache *cache.ReportCache
	if cfg.Remote() {
		client, err = artifact.NewClient(cfg.Owner, cfg.Repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Auth error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Make sure you are authenticated with: gh auth login")
			os.Exit(1)
		}

		cacheDir := filepath.Join(os.TempDir(), "reportdeck", "reports")
		reportCache, err = cache.NewReportCache(cacheDir, cfg.CacheSizeMB, cfg.CacheTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cache error: %v\n", err)
			os.Exit(1)
		}
		if err := reportCache.Evict(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache eviction failed: %v\n", err)
		}
	}

	app := tui.NewApp(cfg, client, reportCache)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
