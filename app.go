package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/cdtdelta/insiderwatch/internal/config"
	"github.com/cdtdelta/insiderwatch/internal/csvexport"
	"github.com/cdtdelta/insiderwatch/internal/dashboard"
	"github.com/cdtdelta/insiderwatch/internal/database"
	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/logger"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/nav"
	"github.com/cdtdelta/insiderwatch/internal/table"
	"github.com/cdtdelta/insiderwatch/internal/workspace"
)

// App is the main application struct that Wails binds to the frontend.
// All exported methods become callable from JavaScript.
type App struct {
	ctx   context.Context
	cfg   *config.Config
	ws    *workspace.Workspace
	shell *nav.Shell
	log   logger.Logger

	// Runtime hooks, replaced in tests.
	openDialog func(runtime.OpenDialogOptions) (string, error)
	saveDialog func(runtime.SaveDialogOptions) (string, error)
	emit       func(event string, data ...interface{})
}

// NewApp creates a new App over the configured source. When the configured
// store cannot be opened the sample records are shown instead.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	a.openDialog = func(opts runtime.OpenDialogOptions) (string, error) {
		return runtime.OpenFileDialog(a.ctx, opts)
	}
	a.saveDialog = func(opts runtime.SaveDialogOptions) (string, error) {
		return runtime.SaveFileDialog(a.ctx, opts)
	}
	a.emit = func(event string, data ...interface{}) {
		runtime.EventsEmit(a.ctx, event, data...)
	}

	ws, err := workspace.Open(cfg, false, log)
	if err != nil && cfg.Store.DSN != "" {
		logger.Component(log, "store").Warn("opening %s: %v; showing sample records", cfg.Store.DSN, err)
		ws, err = workspace.Open(withStore(cfg, ""), false, log)
	}
	if err != nil {
		return nil, err
	}
	a.ws = ws
	a.shell = nav.NewShell(ws.Catalog, ws.Source)

	start := model.Dashboard
	if d, err := ws.Catalog.Lookup(cfg.UI.DefaultView); err == nil {
		start = d.ID
	}
	if err := a.shell.Select(start); err != nil {
		ws.Close()
		return nil, err
	}
	return a, nil
}

// startup is called when the app starts. The context is saved
// so we can call runtime methods (dialogs, events, etc.)
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if a.ws != nil {
		a.ws.Close()
	}
}

// -- Views --

// ViewInfo describes one entry of the view switcher.
type ViewInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Index  int    `json:"index"`
	Active bool   `json:"active"`
}

// ViewState is everything the frontend needs to draw the active view.
type ViewState struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Heading     string               `json:"heading"`
	Description string               `json:"description"`
	Noun        string               `json:"noun"`
	Columns     []table.Column       `json:"columns"`
	Rows        [][]table.Cell       `json:"rows"`
	Showing     string               `json:"showing"`
	Matched     int                  `json:"matched"`
	Total       int                  `json:"total"`
	Query       string               `json:"query"`
	FilterID    string               `json:"filterId"`
	Filters     []table.FilterOption `json:"filters"`
	Sort        table.SortState      `json:"sort"`
	Summary     []table.StatValue    `json:"summary"`
}

// ListViews returns the views in navigation order.
func (a *App) ListViews() []ViewInfo {
	active := a.shell.Active()
	return lo.Map(a.ws.Catalog.All(), func(d *domains.Domain, i int) ViewInfo {
		return ViewInfo{
			ID:     string(d.ID),
			Title:  d.Title,
			Index:  i,
			Active: active != nil && active.ID == d.ID,
		}
	})
}

// SelectView activates a view by id or title. The previous view's search,
// filter and sort are discarded.
func (a *App) SelectView(name string) (*ViewState, error) {
	d, err := a.ws.Catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := a.shell.Select(d.ID); err != nil {
		return nil, err
	}
	return a.CurrentView(), nil
}

// SetSearch replaces the search text of the active view.
func (a *App) SetSearch(query string) *ViewState {
	a.shell.View().SetQuery(query)
	return a.CurrentView()
}

// SetFilter activates a filter of the active view. Unknown ids select all.
func (a *App) SetFilter(id string) *ViewState {
	a.shell.View().SetFilter(id)
	return a.CurrentView()
}

// ToggleSort applies a column header click.
func (a *App) ToggleSort(key string) *ViewState {
	a.shell.View().ToggleSort(key)
	return a.CurrentView()
}

// ResetView clears search, filter and sort.
func (a *App) ResetView() *ViewState {
	a.shell.View().Reset()
	return a.CurrentView()
}

// CurrentView renders the active view.
func (a *App) CurrentView() *ViewState {
	d := a.shell.Active()
	v := a.shell.View()
	vm := v.Render()
	return &ViewState{
		ID:          string(d.ID),
		Title:       d.Title,
		Heading:     d.Heading,
		Description: d.Description,
		Noun:        d.Noun,
		Columns:     vm.Columns,
		Rows:        vm.Cells,
		Showing:     vm.Showing(),
		Matched:     vm.Matched,
		Total:       vm.Total,
		Query:       vm.Query,
		FilterID:    vm.FilterID,
		Filters:     d.Schema.FilterOptions(),
		Sort:        vm.Sort,
		Summary:     v.Summary().Values(),
	}
}

// GetDashboard builds the overview panels from the current source.
func (a *App) GetDashboard() (*dashboard.Dashboard, error) {
	return dashboard.Build(a.ws.Catalog, a.ws.Source)
}

// GetDistinctValues counts the values of a column in the active view.
func (a *App) GetDistinctValues(field string) (map[string]int64, error) {
	d := a.shell.Active()
	if _, ok := d.Schema.Column(field); !ok {
		return nil, fmt.Errorf("unknown column %q", field)
	}
	if a.ws.Store != nil {
		return a.ws.Store.GetDistinctValues(database.TableName(d.ID), field)
	}
	counts := lo.CountValuesBy(a.shell.View().Records(), func(r model.Record) string {
		return r.String(field)
	})
	delete(counts, "")
	return lo.MapValues(counts, func(n int, _ string) int64 { return int64(n) }), nil
}

// -- Log store --

// StoreInfo contains summary info about the loaded source.
type StoreInfo struct {
	Path    string           `json:"path"`
	Driver  string           `json:"driver"`
	Records map[string]int64 `json:"records"`
	MinDate string           `json:"minDate"`
	MaxDate string           `json:"maxDate"`
}

// GetStoreInfo describes the current source. Path is empty for the samples.
func (a *App) GetStoreInfo() (*StoreInfo, error) {
	info := &StoreInfo{Records: make(map[string]int64)}
	if a.ws.Store == nil {
		for _, d := range a.ws.Catalog.All() {
			info.Records[string(d.ID)] = int64(len(d.Samples))
		}
		return info, nil
	}

	info.Path = a.ws.Store.Path()
	info.Driver = a.ws.Config.Store.Driver
	for _, t := range a.ws.Store.Tables() {
		n, err := a.ws.Store.CountRecords(t.Name)
		if err != nil {
			return nil, err
		}
		info.Records[string(t.Domain)] = n

		minTS, maxTS, err := a.ws.Store.GetTimestampRange(t.Name)
		if err != nil {
			return nil, err
		}
		if minTS != "" && (info.MinDate == "" || minTS < info.MinDate) {
			info.MinDate = minTS
		}
		if maxTS > info.MaxDate {
			info.MaxDate = maxTS
		}
	}
	return info, nil
}

// OpenLogStore opens a file dialog and switches to an existing SQLite store.
func (a *App) OpenLogStore() (*StoreInfo, error) {
	path, err := a.openDialog(runtime.OpenDialogOptions{
		Title: "Open Log Store",
		Filters: []runtime.FileFilter{
			{DisplayName: "SQLite Database (*.db)", Pattern: "*.db"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil // user cancelled
	}
	if err := a.switchStore(path, false); err != nil {
		return nil, err
	}
	return a.GetStoreInfo()
}

// CloseLogStore closes the store and returns to the sample records.
func (a *App) CloseLogStore() error {
	if a.ws.Store == nil {
		return nil
	}
	return a.switchStore("", false)
}

// ImportAgentLog opens a file dialog for an agent log and imports it into
// the open store. Without a store the user picks where to create one.
func (a *App) ImportAgentLog() (*workspace.ImportResult, error) {
	logPath, err := a.openDialog(runtime.OpenDialogOptions{
		Title: "Import Agent Log",
		Filters: []runtime.FileFilter{
			{DisplayName: "Agent Logs (*.jsonl, *.gz, *.zst)", Pattern: "*.jsonl;*.json;*.gz;*.zst"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, err
	}
	if logPath == "" {
		return nil, nil
	}
	return a.importAgentLog(logPath)
}

func (a *App) importAgentLog(logPath string) (*workspace.ImportResult, error) {
	if a.ws.Store == nil {
		base := strings.TrimSuffix(filepath.Base(logPath), filepath.Ext(logPath))
		dbPath, err := a.saveDialog(runtime.SaveDialogOptions{
			Title:           "Save Log Store As",
			DefaultFilename: strings.TrimSuffix(base, ".jsonl") + ".db",
			Filters: []runtime.FileFilter{
				{DisplayName: "SQLite Database (*.db)", Pattern: "*.db"},
			},
		})
		if err != nil {
			return nil, err
		}
		if dbPath == "" {
			return nil, nil
		}
		if err := a.switchStore(dbPath, true); err != nil {
			return nil, err
		}
	}

	result, err := a.ws.ImportAgentLog(logPath, func(p workspace.Progress) {
		a.emit("import:progress", p)
	})
	if err != nil {
		return nil, err
	}

	if err := a.shell.SetSource(a.ws.Source); err != nil {
		return nil, err
	}
	a.emit("import:progress", workspace.Progress{
		Phase:   "done",
		Message: fmt.Sprintf("Import complete: %d records, %d alerts", result.Total(), result.Alerts),
		Count:   result.Total(),
		Total:   result.Total(),
	})
	return result, nil
}

// switchStore reopens the workspace on a SQLite file, or on the samples for
// an empty path, and reloads the active view.
func (a *App) switchStore(path string, create bool) error {
	cfg := withStore(a.cfg, path)
	ws, err := workspace.Open(cfg, create, a.log)
	if err != nil {
		return fmt.Errorf("opening log store: %w", err)
	}
	if err := a.shell.SetSource(ws.Source); err != nil {
		ws.Close()
		return err
	}
	a.ws.Close()
	a.ws = ws
	return nil
}

// -- Export --

// ExportCSV writes the active view, as currently searched, filtered and
// sorted, to a CSV file the user picks.
func (a *App) ExportCSV() (string, error) {
	d := a.shell.Active()
	savePath, err := a.saveDialog(runtime.SaveDialogOptions{
		Title:           "Export to CSV",
		DefaultFilename: string(d.ID) + ".csv",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV Files (*.csv)", Pattern: "*.csv"},
		},
	})
	if err != nil {
		return "", err
	}
	if savePath == "" {
		return "", nil // user cancelled
	}
	return a.exportCSV(savePath)
}

func (a *App) exportCSV(path string) (string, error) {
	d := a.shell.Active()
	vm := a.shell.View().Render()

	a.emit("export:status", fmt.Sprintf("Writing %d %s to CSV...", vm.Matched, d.Noun))
	if err := csvexport.WriteFile(path, vm, !a.cfg.Export.Formatted); err != nil {
		return "", fmt.Errorf("writing CSV: %w", err)
	}
	a.emit("export:status", "Done")

	return fmt.Sprintf("Exported %d %s to %s", vm.Matched, d.Noun, path), nil
}

// GetVersion returns the application version string.
func (a *App) GetVersion() string {
	return Version
}

// withStore copies cfg pointing at a SQLite file. An empty path selects the
// sample records.
func withStore(cfg *config.Config, path string) *config.Config {
	c := *cfg
	c.Store.DSN = path
	if path != "" {
		c.Store.Driver = "sqlite"
	}
	return &c
}
