package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cobby8/allowance-manager-web/internal/auth"
	"github.com/cobby8/allowance-manager-web/internal/config"
	"github.com/cobby8/allowance-manager-web/internal/mask"
	"github.com/cobby8/allowance-manager-web/internal/metrics"
	"github.com/cobby8/allowance-manager-web/internal/middleware"
	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/render"
	"github.com/cobby8/allowance-manager-web/internal/service"
	"github.com/cobby8/allowance-manager-web/internal/sheet"
	"github.com/cobby8/allowance-manager-web/internal/source"
	"github.com/cobby8/allowance-manager-web/internal/storage"
	"github.com/cobby8/allowance-manager-web/internal/storage/sqlite"
	"github.com/cobby8/allowance-manager-web/pkg/logging"
)

type reconcileFlags struct {
	roster      string
	activity    string
	format      string
	out         string
	orphans     bool
	reveal      bool
	archive     string
	metricsFile string
	configPath  string
}

func runReconcile(ctx context.Context, args []string, e env) error {
	var f reconcileFlags
	fs := newFlagSet("reconcile", e)
	fs.StringVar(&f.roster, "roster", "", "roster sheet: path, Google Sheets URL/ID, or sheets:ID")
	fs.StringVar(&f.activity, "activity", "", "activity log sheet: path, Google Sheets URL/ID, or sheets:ID")
	fs.StringVarP(&f.format, "format", "f", "", "output format: table, json, csv, html (default from config, else table)")
	fs.StringVarP(&f.out, "out", "o", "", "write output to this file instead of stdout")
	fs.BoolVar(&f.orphans, "orphans", false, "include activity rows no roster entry claims")
	fs.BoolVar(&f.reveal, "reveal", false, "show resident IDs and account numbers unmasked (asks for the passphrase)")
	fs.StringVar(&f.archive, "archive", "", "export the run to this SQLite archive")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write run gauges to this Prometheus textfile")
	fs.StringVar(&f.configPath, "config", "", "config file (YAML or JSONC; default $"+config.EnvVar+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if f.roster == "" || f.activity == "" {
		return fmt.Errorf("--roster and --activity are both required")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if e.getenv("LOG_LEVEL") == "" {
		logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	}
	logger := slog.Default()

	applyFlags(cfg, f)
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var passphrase string
	if f.reveal {
		if passphrase, err = readPassphrase(e); err != nil {
			return err
		}
		if err := auth.VerifyPassphrase(cfg.Security.PassphraseHash, passphrase); err != nil {
			return fmt.Errorf("cannot reveal sensitive fields: %w", err)
		}
	}

	opts, err := sourceOptions(ctx, cfg, f)
	if err != nil {
		return err
	}
	rosterSrc, err := source.Resolve(f.roster, opts)
	if err != nil {
		return err
	}
	activitySrc, err := source.Resolve(f.activity, opts)
	if err != nil {
		return err
	}

	session := service.NewSession(service.Config{
		Logger:          logger,
		RosterColumns:   sheet.RosterColumns.Merge(cfg.Columns.Roster),
		ActivityColumns: sheet.ActivityColumns.Merge(cfg.Columns.Activity),
	})
	if err := session.LoadRoster(ctx, middleware.LoggingSource(rosterSrc, logger)); err != nil {
		return err
	}
	if err := session.LoadActivity(ctx, middleware.LoggingSource(activitySrc, logger)); err != nil {
		return err
	}

	report := render.Report{
		Settlements: session.Settlements(),
		Orphans:     session.Orphans(),
		Summary:     session.Summary(),
	}
	if err := writeReport(e, f.out, format, report, render.Options{Reveal: f.reveal, Orphans: f.orphans}); err != nil {
		return err
	}

	finished := time.Now()
	if cfg.Archive.Path != "" {
		if err := archiveRun(ctx, cfg, session, passphrase, finished); err != nil {
			return err
		}
		logger.Info("Run archived", "archive", cfg.Archive.Path)
	}
	if cfg.Metrics.File != "" {
		rec := metrics.New()
		rec.Observe(report.Summary, finished)
		if err := rec.WriteFile(cfg.Metrics.File); err != nil {
			return err
		}
		logger.Info("Metrics written", "file", cfg.Metrics.File)
	}
	return nil
}

// applyFlags lets explicit flags override the config file.
func applyFlags(cfg *config.Config, f reconcileFlags) {
	if f.format != "" {
		cfg.Format = f.format
	}
	if f.archive != "" {
		cfg.Archive.Path = f.archive
	}
	if f.metricsFile != "" {
		cfg.Metrics.File = f.metricsFile
	}
}

// sourceOptions builds retrieval options. The Sheets API client is only
// created when a sheets: location asks for it.
func sourceOptions(ctx context.Context, cfg *config.Config, f reconcileFlags) (source.Options, error) {
	opts := source.Options{
		HTTPClient:    &http.Client{Timeout: cfg.Sheets.Timeout},
		ExportBaseURL: cfg.Sheets.ExportBaseURL,
		SheetRange:    cfg.Sheets.Range,
	}
	if strings.HasPrefix(f.roster, "sheets:") || strings.HasPrefix(f.activity, "sheets:") {
		srv, err := source.NewSheetsService(ctx, cfg.Sheets.APIKey)
		if err != nil {
			return opts, err
		}
		opts.Sheets = srv
	}
	return opts, nil
}

func writeReport(e env, path string, format render.Format, r render.Report, opts render.Options) error {
	if path == "" {
		return render.Write(e.stdout, format, r, opts)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.Write(file, format, r, opts); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

// archiveRun exports the session to the configured archive. Sensitive fields
// are sealed with the passphrase when one was verified, masked otherwise.
func archiveRun(ctx context.Context, cfg *config.Config, s *service.Session, passphrase string, at time.Time) error {
	p, err := newProtector(passphrase, cfg.Security.ScryptWorkFactor)
	if err != nil {
		return err
	}

	run := &storage.Run{
		CreatedAt: at.Unix(),
		Roster:    archiveInput(s.RosterInput()),
		Activity:  archiveInput(s.ActivityInput()),
	}
	for _, st := range s.Settlements() {
		if st.ResidentID, err = p.residentID(st.ResidentID); err != nil {
			return err
		}
		if st.AccountNumber, err = p.account(st.AccountNumber); err != nil {
			return err
		}
		if st.Activities, err = p.activities(st.Activities); err != nil {
			return err
		}
		run.Settlements = append(run.Settlements, st)
	}
	if run.Orphans, err = p.activities(s.Orphans()); err != nil {
		return err
	}

	archive, err := sqlite.New(cfg.Archive.Path)
	if err != nil {
		return err
	}
	defer archive.Close()

	return archive.SaveRun(ctx, run)
}

func archiveInput(in service.Input) storage.Input {
	return storage.Input{
		Source:      in.Source,
		Fingerprint: storage.Fingerprint(in.Rows),
		Rows:        len(in.Rows),
	}
}

// protector seals sensitive values when a passphrase is known and masks
// them otherwise.
type protector struct {
	sealer *mask.Sealer
}

func newProtector(passphrase string, workFactor int) (*protector, error) {
	if passphrase == "" {
		return &protector{}, nil
	}
	sealer, err := mask.NewSealer(passphrase, workFactor)
	if err != nil {
		return nil, err
	}
	return &protector{sealer: sealer}, nil
}

func (p *protector) residentID(s string) (string, error) {
	if p.sealer == nil {
		return mask.ResidentID(s), nil
	}
	return p.sealer.Seal(s)
}

func (p *protector) account(s string) (string, error) {
	if p.sealer == nil {
		return mask.AccountNumber(s), nil
	}
	return p.sealer.Seal(s)
}

func (p *protector) activities(acts []models.ActivityRecord) ([]models.ActivityRecord, error) {
	if len(acts) == 0 {
		return nil, nil
	}
	out := make([]models.ActivityRecord, len(acts))
	for i, a := range acts {
		var err error
		if a.ResidentID, err = p.residentID(a.ResidentID); err != nil {
			return nil, err
		}
		if a.AccountNumber, err = p.account(a.AccountNumber); err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
