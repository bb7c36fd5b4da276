package off

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutridiary/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// exportRow builds a tab-separated export line in the order of exportHeader.
func exportRow(code, name, countries, kcal string) string {
	return strings.Join([]string{
		code, name, "BrandX", "snacks", "100 g",
		"b", "2", "3",
		kcal, "5", "60", "10", "8", "2", "3", "0.5", "0.2",
		countries,
	}, "\t")
}

var exportHeader = strings.Join(append(append([]string{}, keepColumns...), countriesColumn), "\t")

func TestFilter_KeepsMatchingCountries(t *testing.T) {
	in := strings.Join([]string{
		exportHeader,
		exportRow("5601001", "Bolachas Maria", "en:portugal", "450"),
		exportRow("5601002", "Galletas", "en:spain,en:france", "480"),
		exportRow("3401003", "Biscuits", "en:france", "500"),
	}, "\n")

	var out bytes.Buffer
	stats, err := Filter(context.Background(), strings.NewReader(in), &out,
		FilterOptions{Countries: []string{"portugal", "spain"}}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Read)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 0, stats.Skipped)

	recs, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3) // header + 2 rows
	assert.Equal(t, keepColumns, recs[0])
	assert.Equal(t, "5601001", recs[1][0])
	assert.Equal(t, "Bolachas Maria", recs[1][1])
	assert.Equal(t, "5601002", recs[2][0])
}

func TestFilter_DropsIncompleteRows(t *testing.T) {
	in := strings.Join([]string{
		exportHeader,
		exportRow("5601001", "", "en:portugal", "450"),     // no name
		exportRow("5601002", "Arroz", "en:portugal", ""),   // no energy
		exportRow("5601003", "Massa", "en:portugal", "350") + "\textra",
		"5601004\ttruncated line",
		exportRow("5601005", "Atum", "en:portugal", "180"),
	}, "\n")

	var out bytes.Buffer
	stats, err := Filter(context.Background(), strings.NewReader(in), &out,
		FilterOptions{Countries: []string{"portugal"}}, testLogger())
	require.NoError(t, err)

	// Extra or missing fields are tolerated, only the content checks drop rows.
	assert.Equal(t, 5, stats.Read)
	assert.Equal(t, 2, stats.Kept)

	recs, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Massa", recs[1][1])
	assert.Equal(t, "Atum", recs[2][1])
}

func TestFilter_NoCountriesKeepsEverything(t *testing.T) {
	in := strings.Join([]string{
		exportHeader,
		exportRow("5601001", "Queijo", "en:france", "300"),
	}, "\n")

	var out bytes.Buffer
	stats, err := Filter(context.Background(), strings.NewReader(in), &out, FilterOptions{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Kept)
}

func TestFilter_MissingColumn(t *testing.T) {
	in := "code\tproduct_name\n123\tX\n"

	var out bytes.Buffer
	_, err := Filter(context.Background(), strings.NewReader(in), &out, FilterOptions{}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestFilterFile_Gzip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.csv.gz")
	dest := filepath.Join(dir, "clean.csv")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(strings.Join([]string{
		exportHeader,
		exportRow("5601001", "Leite meio-gordo", "en:portugal", "47"),
	}, "\n")))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0o644))

	stats, err := FilterFile(context.Background(), src, dest, FilterOptions{Countries: []string{"portugal"}}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Kept)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Leite meio-gordo")
}
