package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

// Header returns the export header: the column labels in display order.
func Header(vm *table.ViewModel) []string {
	header := make([]string, len(vm.Columns))
	for i, c := range vm.Columns {
		header[i] = c.Label
	}
	return header
}

// Write writes the rows of vm in view order. With raw set, stored values
// are written instead of the formatted cell text.
func Write(w io.Writer, vm *table.ViewModel, raw bool) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header(vm)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range vm.Rows {
		row := make([]string, len(vm.Columns))
		for j, c := range vm.Columns {
			if raw {
				row[j] = model.ToString(vm.Rows[i].Value(c.Key))
			} else if i < len(vm.Cells) && j < len(vm.Cells[i]) {
				row[j] = vm.Cells[i][j].Text
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile creates path and writes vm to it.
func WriteFile(path string, vm *table.ViewModel, raw bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Write(f, vm, raw)
}
