package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/cdtdelta/insiderwatch/internal/browse"
	"github.com/cdtdelta/insiderwatch/internal/csvexport"
	"github.com/cdtdelta/insiderwatch/internal/dashboard"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/nav"
	"github.com/cdtdelta/insiderwatch/internal/table"
	"github.com/cdtdelta/insiderwatch/internal/termui"
)

// Command-specific flags
var (
	showFlags   ViewFlags
	exportFlags ViewFlags
	exportOut   string
	exportRaw   bool
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List the views",
	Long: `List every view with its id, record count and filter ids.

The # column is the digit that jumps to the view in 'iwctl browse'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViews(cmd.OutOrStdout())
	},
}

var showCmd = &cobra.Command{
	Use:   "show <view>",
	Short: "Print a view",
	Long: `Print a view's summary cards and table.

The view is named by id or title. The dashboard view prints the overview
unless a search, filter or sort is given.

Examples:
  iwctl show network
  iwctl show security --filter blocked
  iwctl show files --search confidential --sort riskScore --desc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.OutOrStdout(), args[0], showFlags)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <view>",
	Short: "Print a view's summary statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.OutOrStdout(), args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <view>",
	Short: "Write a view as CSV",
	Long: `Write the rows of a view, after search, filter and sort, as CSV.

Cells are written as displayed unless --raw is set or export.formatted is
false in the config. Without --out the CSV goes to stdout.

Examples:
  iwctl export media --filter denied --out denied.csv
  iwctl export network --sort bytesSent --desc --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.OutOrStdout(), args[0], exportOut, exportRaw, exportFlags)
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [view]",
	Short: "Browse the views interactively",
	Long: `Open the interactive browser, starting at the given view or ui.default_view.

Keys: / search, f filter, ←/→ column, s sort, tab/shift+tab or 0-9 switch
view, r reset, q quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := ""
		if len(args) == 1 {
			start = args[0]
		}
		return runBrowse(cmd.InOrStdin(), cmd.OutOrStdout(), start)
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)

	AddViewFlags(showCmd, &showFlags)
	AddViewFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportRaw, "raw", false, "write stored values instead of display text")
}

func runViews(out io.Writer) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	var rows [][]string
	for i, d := range w.Catalog.All() {
		records, err := w.Source.Records(d.ID)
		if err != nil {
			return err
		}
		filters := lo.Map(d.Schema.FilterOptions(), func(o table.FilterOption, _ int) string {
			return o.ID
		})
		rows = append(rows, []string{
			strconv.Itoa(i),
			string(d.ID),
			d.Title,
			strconv.Itoa(len(records)),
			strings.Join(filters, ", "),
		})
	}

	fmt.Fprintln(out, termui.RenderList([]string{"#", "ID", "View", "Records", "Filters"}, rows, termui.DefaultStyles()))
	return nil
}

func runShow(out io.Writer, name string, f ViewFlags) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	d, err := w.Catalog.Lookup(name)
	if err != nil {
		return err
	}
	styles := termui.DefaultStyles()

	if d.ID == model.Dashboard && f.Search == "" && f.Sort == "" && (f.Filter == "" || f.Filter == table.FilterAll) {
		db, err := dashboard.Build(w.Catalog, w.Source)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, termui.RenderDashboard(db, styles))
		return nil
	}

	vm, sum, err := buildView(w, d, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, termui.RenderView(d, vm, sum, styles))
	return nil
}

func runSummary(out io.Writer, name string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	d, err := w.Catalog.Lookup(name)
	if err != nil {
		return err
	}
	_, sum, err := buildView(w, d, ViewFlags{})
	if err != nil {
		return err
	}

	values := sum.Values()
	width := 0
	for _, v := range values {
		width = max(width, lipgloss.Width(v.Label))
	}
	fmt.Fprintln(out, d.Heading)
	for _, v := range values {
		fmt.Fprintf(out, "  %-*s  %s\n", width, v.Label, termui.FormatStat(v))
	}
	return nil
}

func runExport(out io.Writer, name, path string, raw bool, f ViewFlags) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	d, err := w.Catalog.Lookup(name)
	if err != nil {
		return err
	}
	vm, _, err := buildView(w, d, f)
	if err != nil {
		return err
	}
	raw = raw || !w.Config.Export.Formatted

	if path == "" || path == "-" {
		return csvexport.Write(out, vm, raw)
	}
	if err := csvexport.WriteFile(path, vm, raw); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d %s to %s\n", vm.Matched, d.Noun, path)
	return nil
}

func runBrowse(in io.Reader, out io.Writer, start string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	if start == "" {
		start = w.Config.UI.DefaultView
	}
	d, err := w.Catalog.Lookup(start)
	if err != nil {
		return err
	}
	return browse.Run(nav.NewShell(w.Catalog, w.Source), d.ID, in, out)
}
