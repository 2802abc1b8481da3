package agentlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
)

// ReadResult contains the outcome of an agent log import.
type ReadResult struct {
	Records  map[model.DomainID][]model.Record
	Count    int
	Excluded int
}

// Total returns the number of records across all domains.
func (r *ReadResult) Total() int {
	n := 0
	for _, recs := range r.Records {
		n += len(recs)
	}
	return n
}

var parserPool fastjson.ParserPool

// payload timestamp keys, checked in order
var timestampKeys = []string{"timestamp", "Timestamp", "time"}

// ValidateFile checks that the first line of path is an agent payload with
// at least one section known to c.
func ValidateFile(path string, c *domains.Catalog) error {
	rc, err := open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := newScanner(rc)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading first line: %w", err)
		}
		return fmt.Errorf("empty file")
	}

	line := strings.TrimSpace(scanner.Text())
	if len(line) == 0 || line[0] != '{' {
		return fmt.Errorf("first line is not a JSON object")
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.Parse(line)
	if err != nil {
		return fmt.Errorf("first line is not valid JSON: %w", err)
	}
	for _, d := range c.All() {
		if d.Section != "" && v.Exists(d.Section) {
			return nil
		}
	}
	return fmt.Errorf("no known section found; does not appear to be an agent log")
}

// ReadRecords reads every payload in an agent log and splits its sections
// into per-domain records. An onProgress callback is called every 10,000
// payloads if non-nil.
func ReadRecords(path string, c *domains.Catalog, onProgress func(count int)) (*ReadResult, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	result, err := Read(rc, c, onProgress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Read is ReadRecords over an already opened stream.
func Read(r io.Reader, c *domains.Catalog, onProgress func(count int)) (*ReadResult, error) {
	scanner := newScanner(r)

	p := parserPool.Get()
	defer parserPool.Put(p)

	result := &ReadResult{Records: make(map[model.DomainID][]model.Record)}
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		v, err := p.ParseBytes(line)
		if err != nil || v.Type() != fastjson.TypeObject {
			result.Excluded++
			continue
		}

		if !splitPayload(v, c, result.Records) {
			result.Excluded++
			continue
		}

		result.Count++
		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNum, err)
	}
	return result, nil
}

// splitPayload appends the records found in one payload and reports whether
// any known section was present.
func splitPayload(v *fastjson.Value, c *domains.Catalog, into map[model.DomainID][]model.Record) bool {
	stamp := ""
	for _, k := range timestampKeys {
		if s := valueString(v.Get(k)); s != "" {
			stamp = s
			break
		}
	}

	found := false
	for _, d := range c.All() {
		if d.Section == "" {
			continue
		}
		section := v.Get(d.Section)
		if section == nil {
			continue
		}
		found = true

		var entries []*fastjson.Value
		switch section.Type() {
		case fastjson.TypeObject:
			entries = []*fastjson.Value{section}
		case fastjson.TypeArray:
			entries, _ = section.Array()
		}

		for _, e := range entries {
			rec := mapEntry(d, e)
			if len(rec) == 0 {
				continue
			}
			if !rec.Has(model.KeyTimestamp) && stamp != "" {
				rec[model.KeyTimestamp] = stamp
			}
			into[d.ID] = append(into[d.ID], rec)
		}
	}
	return found
}

// mapEntry converts one section entry to a record, dropping fields the
// domain does not know.
func mapEntry(d *domains.Domain, e *fastjson.Value) model.Record {
	obj, err := e.Object()
	if err != nil {
		return nil
	}
	rec := make(model.Record, obj.Len())
	obj.Visit(func(key []byte, val *fastjson.Value) {
		col, ok := d.ColumnFor(string(key))
		if !ok {
			return
		}
		switch val.Type() {
		case fastjson.TypeNull:
		case fastjson.TypeNumber:
			rec[col] = val.GetFloat64()
		default:
			rec[col] = valueString(val)
		}
	})
	return rec
}

// valueString renders a JSON value as record text. Arrays are joined with
// ", "; nested objects keep their JSON form.
func valueString(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return strconv.FormatFloat(v.GetFloat64(), 'f', -1, 64)
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	case fastjson.TypeArray:
		items := v.GetArray()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s := valueString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case fastjson.TypeObject:
		return v.String()
	default:
		return ""
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Allow up to 10MB per payload line
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	return scanner
}

// open returns a reader for path, decompressing .gz and .zst files.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	default:
		return f, nil
	}
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
