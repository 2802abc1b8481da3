package main

import (
	"embed"
	"os"
	"strconv"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/cdtdelta/insiderwatch/internal/config"
	"github.com/cdtdelta/insiderwatch/internal/logger"
)

//go:embed all:frontend/dist
var assets embed.FS

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	log := logger.Default()

	cfg, err := config.LoadOrDefault("")
	if err != nil {
		log.Warn("loading config: %v; using defaults", err)
		cfg = config.DefaultConfig()
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("starting insiderwatch: %v", err)
		os.Exit(1)
	}

	appMenu := menu.NewMenu()

	fileMenu := appMenu.AddSubmenu("File")
	fileMenu.AddText("Open Log Store", keys.CmdOrCtrl("o"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:open-store")
	})
	fileMenu.AddText("Import Agent Log", keys.CmdOrCtrl("i"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:import-agent-log")
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Close Log Store", keys.CmdOrCtrl("w"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:close-store")
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Export CSV", keys.CmdOrCtrl("e"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:export-csv")
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Quit", keys.CmdOrCtrl("q"), func(cd *menu.CallbackData) {
		runtime.Quit(app.ctx)
	})

	editMenu := appMenu.AddSubmenu("Edit")
	editMenu.AddText("Cut", keys.CmdOrCtrl("x"), nil)
	editMenu.AddText("Copy", keys.CmdOrCtrl("c"), nil)
	editMenu.AddText("Paste", keys.CmdOrCtrl("v"), nil)
	editMenu.AddText("Select All", keys.CmdOrCtrl("a"), nil)

	viewMenu := appMenu.AddSubmenu("View")
	viewMenu.AddText("Search", keys.CmdOrCtrl("f"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:search")
	})
	viewMenu.AddText("Reset View", keys.CmdOrCtrl("r"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:reset-view")
	})
	viewMenu.AddSeparator()
	for i, d := range app.ws.Catalog.All() {
		id := d.ID
		viewMenu.AddText(d.Title, keys.CmdOrCtrl(strconv.Itoa(i)), func(cd *menu.CallbackData) {
			runtime.EventsEmit(app.ctx, "menu:select-view", string(id))
		})
	}

	err = wails.Run(&options.App{
		Title:  "insiderwatch v" + Version + " - Insider Risk Console",
		Width:  1400,
		Height: 900,
		Menu:   appMenu,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:     logger.Wails(log),
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
