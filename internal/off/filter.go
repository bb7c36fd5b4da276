package off

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nutridiary/internal/logging"
)

const defaultChunkSize = 100_000

// FilterOptions controls the filter stage.
type FilterOptions struct {
	// Countries are matched as case-insensitive substrings of the
	// countries_tags column; a row is kept when any of them matches.
	Countries []string

	// ChunkSize is the number of source rows between progress log lines.
	ChunkSize int
}

// FilterStats reports what the filter stage did.
type FilterStats struct {
	Read    int // data rows read from the export
	Kept    int // rows written to the clean CSV
	Skipped int // rows dropped as malformed
}

// Filter streams the tab-separated OpenFoodFacts export from in and writes
// the clean comma-separated CSV to out. Rows are kept when their
// countries_tags match one of the configured countries and both a product
// name and an energy value are present. Malformed rows are skipped, the
// export is too large and too dirty for anything stricter.
func Filter(ctx context.Context, in io.Reader, out io.Writer, opts FilterOptions, log logging.Logger) (*FilterStats, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	countries := make([]string, 0, len(opts.Countries))
	for _, c := range opts.Countries {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			countries = append(countries, c)
		}
	}

	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(out)
	if err := w.Write(keepColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	stats := &FilterStats{}
	row := make([]string, len(keepColumns))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Corrupted line; the reader recovers on the next one.
			stats.Skipped++
			continue
		}

		stats.Read++
		if stats.Read%opts.ChunkSize == 0 {
			log.Info(ctx, "filter progress", "read", stats.Read, "kept", stats.Kept, "skipped", stats.Skipped)
		}

		if !matchesCountry(field(rec, idx.countries), countries) {
			continue
		}
		if strings.TrimSpace(field(rec, idx.name)) == "" {
			continue
		}
		if strings.TrimSpace(field(rec, idx.energy)) == "" {
			continue
		}

		for i, col := range idx.keep {
			row[i] = field(rec, col)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
		stats.Kept++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	log.Info(ctx, "filter done", "read", stats.Read, "kept", stats.Kept, "skipped", stats.Skipped)
	return stats, nil
}

// FilterFile runs Filter between files, transparently decompressing a .gz
// source.
func FilterFile(ctx context.Context, srcPath, destPath string, opts FilterOptions, log logging.Logger) (*FilterStats, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer src.Close()

	var in io.Reader = src
	if strings.HasSuffix(srcPath, ".gz") {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create clean csv: %w", err)
	}

	stats, ferr := Filter(ctx, in, dest, opts, log)
	if cerr := dest.Close(); ferr == nil && cerr != nil {
		ferr = fmt.Errorf("failed to close clean csv: %w", cerr)
	}
	if ferr != nil {
		return nil, ferr
	}
	return stats, nil
}

type columns struct {
	keep      []int // source index per keepColumns entry
	countries int
	name      int
	energy    int
}

func columnIndexes(header []string) (*columns, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	c := &columns{keep: make([]int, len(keepColumns))}
	for i, name := range keepColumns {
		col, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("export is missing column %q", name)
		}
		c.keep[i] = col
		switch name {
		case "product_name":
			c.name = col
		case "energy-kcal_100g":
			c.energy = col
		}
	}

	col, ok := byName[countriesColumn]
	if !ok {
		return nil, fmt.Errorf("export is missing column %q", countriesColumn)
	}
	c.countries = col

	return c, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func matchesCountry(tags string, countries []string) bool {
	if len(countries) == 0 {
		return true
	}
	tags = strings.ToLower(tags)
	for _, c := range countries {
		if strings.Contains(tags, c) {
			return true
		}
	}
	return false
}
