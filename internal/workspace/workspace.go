// Package workspace ties a configuration to the records the front ends
// show: the domain catalog, the optional log store, and the source views
// read from. Imports into the store run through here so the desktop app and
// iwctl share one pipeline.
package workspace

import (
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"

	"github.com/cdtdelta/insiderwatch/internal/agentlog"
	"github.com/cdtdelta/insiderwatch/internal/config"
	"github.com/cdtdelta/insiderwatch/internal/csvimport"
	"github.com/cdtdelta/insiderwatch/internal/database"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/logger"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/rules"
	"github.com/cdtdelta/insiderwatch/internal/source"
)

// Import phases reported through Progress.
const (
	PhaseReading   = "reading"
	PhaseRules     = "rules"
	PhaseInserting = "inserting"
)

// Progress is one import progress report.
type Progress struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Count   int    `json:"count"`
	Total   int    `json:"total"`
}

// ImportResult summarizes a finished import.
type ImportResult struct {
	Path     string                 `json:"path"`
	Payloads int                    `json:"payloads"`
	Excluded int                    `json:"excluded"`
	Alerts   int                    `json:"alerts"`
	Inserted map[model.DomainID]int `json:"inserted"`
}

// Total returns the number of rows written across all domains.
func (r *ImportResult) Total() int {
	n := 0
	for _, c := range r.Inserted {
		n += c
	}
	return n
}

// Workspace is an open configuration. Store is nil when views read the
// built-in samples.
type Workspace struct {
	Config  *config.Config
	Catalog *domains.Catalog
	Store   database.Store
	Source  source.Source

	storeLog  logger.Logger
	importLog logger.Logger
	rules     *rules.Engine
}

// Open builds the workspace for cfg. With an empty DSN the sample records
// are served. A missing SQLite file is created when create is set, so an
// import can start a fresh store.
func Open(cfg *config.Config, create bool, log logger.Logger) (*Workspace, error) {
	if log == nil {
		log = logger.Noop()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	w := &Workspace{
		Config:    cfg,
		Catalog:   domains.New(cfg.Thresholds.Domains()),
		storeLog:  logger.Component(log, "store"),
		importLog: logger.Component(log, "import"),
		rules:     rules.NewEngine(),
	}

	if cfg.Store.DSN == "" {
		w.storeLog.Debug("no store configured, serving sample records")
		w.Source = source.NewStatic(w.Catalog)
		return w, nil
	}

	store, err := openStore(cfg.Store, database.TablesFor(w.Catalog), create)
	if err != nil {
		return nil, err
	}
	w.storeLog.Debug("opened %s store %s", cfg.Store.Driver, store.Path())
	if cfg.Store.Search != "" {
		w.storeLog.Info("views limited to records matching %q", cfg.Store.Search)
	}

	w.Store = store
	w.Source = source.NewStore(store, w.Catalog, cfg.Store.Window())
	return w, nil
}

func openStore(sc config.StoreConfig, tables []database.TableDef, create bool) (database.Store, error) {
	if sc.Driver == "sqlite" && create {
		if _, err := os.Stat(sc.DSN); os.IsNotExist(err) {
			return database.CreateStore(sc.Driver, sc.DSN, tables)
		}
	}
	return database.OpenStore(sc.Driver, sc.DSN, tables)
}

// Close releases the store, if any.
func (w *Workspace) Close() error {
	if w.Store == nil {
		return nil
	}
	return w.Store.Close()
}

// Rules returns the engine run over imported agent logs.
func (w *Workspace) Rules() *rules.Engine {
	return w.rules
}

// ImportAgentLog reads an agent output file, derives rule alerts into the
// security domain, and writes everything to the store.
func (w *Workspace) ImportAgentLog(path string, onProgress func(Progress)) (*ImportResult, error) {
	if w.Store == nil {
		return nil, fmt.Errorf("no log store configured; set store.dsn or pass --db")
	}
	report := progressFunc(onProgress)

	if err := agentlog.ValidateFile(path, w.Catalog); err != nil {
		return nil, fmt.Errorf("invalid agent log: %w", err)
	}

	report(Progress{Phase: PhaseReading, Message: "Reading agent log..."})
	read, err := agentlog.ReadRecords(path, w.Catalog, func(count int) {
		report(Progress{Phase: PhaseReading, Message: fmt.Sprintf("Read %d payloads...", count), Count: count})
	})
	if err != nil {
		return nil, fmt.Errorf("reading agent log: %w", err)
	}
	w.importLog.Info("read %d payloads from %s (%d excluded)", read.Count, path, read.Excluded)

	report(Progress{Phase: PhaseRules, Message: "Running detection rules..."})
	alerts := w.rules.Run(read.Records)
	read.Records[model.Security] = append(read.Records[model.Security], alerts...)
	w.importLog.Debug("rules raised %d alerts", len(alerts))

	result := &ImportResult{
		Path:     path,
		Payloads: read.Count,
		Excluded: read.Excluded,
		Alerts:   len(alerts),
	}
	result.Inserted, err = w.insert(read.Records, report)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ImportCSV reads a CSV export of one domain into the store.
func (w *Workspace) ImportCSV(path string, id model.DomainID, onProgress func(Progress)) (*ImportResult, error) {
	if w.Store == nil {
		return nil, fmt.Errorf("no log store configured; set store.dsn or pass --db")
	}
	report := progressFunc(onProgress)

	d, err := w.Catalog.Get(id)
	if err != nil {
		return nil, err
	}
	if err := csvimport.ValidateFile(path, d); err != nil {
		return nil, fmt.Errorf("invalid CSV file: %w", err)
	}

	report(Progress{Phase: PhaseReading, Message: "Reading CSV file..."})
	read, err := csvimport.ReadRecords(path, d, func(count int) {
		report(Progress{Phase: PhaseReading, Message: fmt.Sprintf("Read %d rows...", count), Count: count})
	})
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	result := &ImportResult{Path: path, Payloads: read.Count, Excluded: read.Excluded}
	result.Inserted, err = w.insert(map[model.DomainID][]model.Record{id: read.Records}, report)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Workspace) insert(records map[model.DomainID][]model.Record, report func(Progress)) (map[model.DomainID]int, error) {
	ids := lo.Filter(lo.Keys(records), func(id model.DomainID, _ int) bool {
		return len(records[id]) > 0
	})
	slices.Sort(ids)

	inserted := make(map[model.DomainID]int, len(ids))
	for _, id := range ids {
		recs := records[id]
		total := len(recs)
		report(Progress{Phase: PhaseInserting, Message: fmt.Sprintf("Inserting %s records...", id), Total: total})

		n, err := w.Store.InsertRecords(database.TableName(id), recs, func(count int) {
			report(Progress{
				Phase:   PhaseInserting,
				Message: fmt.Sprintf("Inserted %d of %d %s records...", count, total, id),
				Count:   count,
				Total:   total,
			})
		})
		if err != nil {
			return inserted, fmt.Errorf("inserting %s records: %w", id, err)
		}
		inserted[id] = n
		w.storeLog.Info("inserted %d %s records", n, id)
	}
	return inserted, nil
}

func progressFunc(fn func(Progress)) func(Progress) {
	if fn == nil {
		return func(Progress) {}
	}
	return fn
}
