package off

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCleanCSV(t *testing.T, rows ...string) string {
	t.Helper()

	lines := append([]string{strings.Join(keepColumns, ",")}, rows...)
	path := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func openBundle(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuild(t *testing.T) {
	csvPath := writeCleanCSV(t,
		"5601001,Bolachas Maria,Cuétara,biscuits,200 g,b,2,3,450,5,60,10,8,2,3,0.5,0.2",
		"5601002,Azeite virgem,Gallo,oils,750 ml,unknown,,4,824,0,0,0,91.6,12.9,0,,",
		",Sem código,,,,,,,100,,,,,,,,",
		"5601003,,,,,,,,100,,,,,,,,",
		"5601001,Bolachas Maria duplicado,,,,,,,450,,,,,,,,",
	)
	dbPath := filepath.Join(t.TempDir(), "bundle.db")

	stats, err := Build(context.Background(), csvPath, dbPath, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 2, stats.Dropped)
	assert.Equal(t, 1, stats.Duplicates)

	db := openBundle(t, dbPath)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		id, name, brand string
		grade           sql.NullString
		score           sql.NullInt64
		kcal, salt      sql.NullFloat64
	)
	err = db.QueryRow(`
		SELECT id, name, brand, nutri_score, nutri_score_score, energy_kcal_100g, salt_100g
		FROM products WHERE barcode = '5601001'`).
		Scan(&id, &name, &brand, &grade, &score, &kcal, &salt)
	require.NoError(t, err)

	assert.Len(t, id, 36)
	assert.Equal(t, "Bolachas Maria", name)
	assert.Equal(t, "Cuétara", brand)
	assert.Equal(t, "B", grade.String)
	assert.Equal(t, int64(2), score.Int64)
	assert.InDelta(t, 450.0, kcal.Float64, 0.001)
	assert.InDelta(t, 0.5, salt.Float64, 0.001)
}

func TestBuild_TolerantValues(t *testing.T) {
	// Unparsable grade and numbers become NULL instead of failing the build.
	csvPath := writeCleanCSV(t,
		"5601010,Iogurte natural,Mimosa,dairy,125 g,unknown,n/a,,63,4.1,5.2,5.2,1.6,1.1,,0.13,",
	)
	dbPath := filepath.Join(t.TempDir(), "bundle.db")

	_, err := Build(context.Background(), csvPath, dbPath, testLogger())
	require.NoError(t, err)

	db := openBundle(t, dbPath)

	var (
		grade         sql.NullString
		score         sql.NullInt64
		fiber, sodium sql.NullFloat64
	)
	err = db.QueryRow(`
		SELECT nutri_score, nutri_score_score, fiber_100g, sodium_100g
		FROM products WHERE barcode = '5601010'`).
		Scan(&grade, &score, &fiber, &sodium)
	require.NoError(t, err)

	assert.False(t, grade.Valid)
	assert.False(t, score.Valid)
	assert.False(t, fiber.Valid)

	// Schema trigger derives sodium from salt on insert.
	require.True(t, sodium.Valid)
	assert.InDelta(t, 0.13/2.5, sodium.Float64, 0.0001)
}

func TestBuild_ReplacesExistingBundle(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bundle.db")

	first := writeCleanCSV(t,
		"5601001,Primeiro,,,,,,,100,,,,,,,,",
		"5601002,Segundo,,,,,,,100,,,,,,,,",
	)
	_, err := Build(context.Background(), first, dbPath, testLogger())
	require.NoError(t, err)

	second := writeCleanCSV(t,
		"5601003,Terceiro,,,,,,,100,,,,,,,,",
	)
	stats, err := Build(context.Background(), second, dbPath, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Inserted)

	db := openBundle(t, dbPath)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBuild_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,product_name\n1,X\n"), 0o644))

	_, err := Build(context.Background(), path, filepath.Join(t.TempDir(), "bundle.db"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}
