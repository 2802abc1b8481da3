package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
)

// ReadResult contains the outcome of a CSV import operation.
type ReadResult struct {
	Domain   model.DomainID
	Records  []model.Record
	Count    int
	Excluded int
}

// Header names accepted for the shared columns on top of each domain's
// agent field names and column keys.
var fieldAliases = map[string]string{
	"date":       model.KeyTimestamp,
	"datetime":   model.KeyTimestamp,
	"time":       model.KeyTimestamp,
	"username":   model.KeyUser,
	"user_name":  model.KeyUser,
	"account":    model.KeyUser,
	"risk":       model.KeyRisk,
	"risk_score": model.KeyRisk,
	"risk score": model.KeyRisk,
	"score":      model.KeyRisk,
}

// ValidateFile checks that the header row of path names at least one column
// of domain d.
func ValidateFile(path string, d *domains.Domain) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header, err := newReader(f).Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if len(buildColumnMap(header, d)) == 0 {
		return fmt.Errorf("no recognized %s fields in header (found: %s)", d.ID, strings.Join(header, ", "))
	}
	return nil
}

// ReadRecords reads the records of one domain from a CSV file. The header
// row decides which columns are present. onProgress is called every 10,000
// rows if non-nil.
func ReadRecords(path string, d *domains.Domain, onProgress func(int)) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Read(f, d, onProgress)
}

// Read is ReadRecords over an already opened stream.
func Read(r io.Reader, d *domains.Domain, onProgress func(int)) (*ReadResult, error) {
	reader := newReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	colMap := buildColumnMap(header, d)
	if len(colMap) == 0 {
		return nil, fmt.Errorf("no recognized fields in header")
	}

	result := &ReadResult{Domain: d.ID}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows
			result.Excluded++
			continue
		}
		if blankRow(row) {
			continue
		}

		result.Records = append(result.Records, rowToRecord(row, colMap))
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	return result, nil
}

// columnMapping maps a CSV column index to a record key.
type columnMapping struct {
	index   int
	key     string
	numeric bool
}

// buildColumnMap resolves header names against the domain. The first column
// mapping to a key wins.
func buildColumnMap(header []string, d *domains.Domain) []columnMapping {
	var mappings []columnMapping
	seen := make(map[string]bool)

	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		key, ok := d.ColumnFor(name)
		if !ok {
			key, ok = fieldAliases[strings.ToLower(name)]
			if ok {
				_, ok = d.Schema.Column(key)
			}
		}
		if !ok || seen[key] {
			continue
		}
		seen[key] = true

		numeric := false
		if col, found := d.Schema.Column(key); found {
			numeric = col.Kind.Numeric()
		}
		mappings = append(mappings, columnMapping{index: i, key: key, numeric: numeric})
	}
	return mappings
}

// rowToRecord converts a CSV row to a record. Numeric cells that do not
// parse are left out.
func rowToRecord(row []string, colMap []columnMapping) model.Record {
	rec := make(model.Record, len(colMap))
	for _, cm := range colMap {
		if cm.index >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[cm.index])
		if !cm.numeric {
			rec[cm.key] = val
			continue
		}
		if n, err := strconv.ParseFloat(strings.ReplaceAll(val, ",", ""), 64); err == nil {
			rec[cm.key] = n
		}
	}
	return rec
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}
