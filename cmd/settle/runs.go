package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cobby8/allowance-manager-web/internal/config"
	"github.com/cobby8/allowance-manager-web/internal/render"
	"github.com/cobby8/allowance-manager-web/internal/storage/sqlite"
)

// runListRuns prints the archived run headers, newest first.
func runListRuns(ctx context.Context, args []string, e env) error {
	var archivePath, configPath string
	fs := newFlagSet("runs", e)
	fs.StringVar(&archivePath, "archive", "", "SQLite archive to read")
	fs.StringVar(&configPath, "config", "", "config file (YAML or JSONC; default $"+config.EnvVar+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if archivePath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		archivePath = cfg.Archive.Path
	}
	if archivePath == "" {
		return fmt.Errorf("--archive is required when the config sets no archive.path")
	}

	archive, err := sqlite.New(archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	runs, err := archive.ListRuns(ctx)
	if err != nil {
		return err
	}
	for _, r := range runs {
		_, err := fmt.Fprintf(e.stdout, "%s  %s  people=%d orphans=%d gross=%s net=%s  roster=%s#%.12s activity=%s#%.12s\n",
			r.ID,
			time.Unix(r.CreatedAt, 0).Format(time.RFC3339),
			r.People,
			r.Orphans,
			render.Amount(r.TotalGross),
			render.Amount(r.TotalNet),
			r.Roster.Source, r.Roster.Fingerprint,
			r.Activity.Source, r.Activity.Fingerprint,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
