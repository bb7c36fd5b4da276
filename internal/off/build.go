package off

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nutridiary/internal/bootstrap"
	"nutridiary/internal/logging"
	"nutridiary/internal/nutrition"
)

// BuildStats reports what the build stage did.
type BuildStats struct {
	Rows       int // data rows read from the clean CSV
	Inserted   int
	Dropped    int // rows without a barcode or name
	Duplicates int // rows sharing a barcode with an earlier one
}

// Build turns the clean CSV at csvPath into a seed database at dbPath. Any
// existing file at dbPath is replaced. Grades are normalized to A-E, numeric
// columns are parsed tolerantly (garbage becomes NULL), rows without a
// barcode or name are dropped, and duplicate barcodes keep the first row.
// Everything is inserted in a single transaction.
func Build(ctx context.Context, csvPath, dbPath string, log logging.Logger) (*BuildStats, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open clean csv: %w", err)
	}
	defer f.Close()

	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove previous bundle: %w", err)
	}

	db, err := sql.Open("sqlite", bootstrap.DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle database: %w", err)
	}
	defer db.Close()

	if err := bootstrap.ExecScript(ctx, db, bootstrap.Schema()); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	stats, err := insertProducts(ctx, db, f, log)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "bundle built", "path", dbPath,
		"rows", stats.Rows, "inserted", stats.Inserted,
		"dropped", stats.Dropped, "duplicates", stats.Duplicates)
	return stats, nil
}

const insertProductSQL = `
	INSERT INTO products (
		id, barcode, name, brand, quantity, categories,
		nutri_score, nutri_score_score, nova_group,
		energy_kcal_100g, proteins_100g, carbs_100g, sugars_100g,
		fat_100g, sat_fat_100g, fiber_100g, salt_100g, sodium_100g
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertProducts(ctx context.Context, db *sql.DB, in io.Reader, log logging.Logger) (*BuildStats, error) {
	r := csv.NewReader(in)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range keepColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("clean csv is missing column %q", name)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertProductSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	stats := &BuildStats{}
	seen := make(map[string]struct{})

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		stats.Rows++

		barcode := strings.TrimSpace(rec[col["code"]])
		name := strings.TrimSpace(rec[col["product_name"]])
		if barcode == "" || name == "" {
			stats.Dropped++
			continue
		}
		if _, dup := seen[barcode]; dup {
			stats.Duplicates++
			continue
		}
		seen[barcode] = struct{}{}

		grade, err := nutrition.NormalizeGrade(rec[col["nutriscore_grade"]])
		if err != nil {
			grade = "" // "unknown", "not-applicable" and similar
		}

		_, err = stmt.ExecContext(ctx,
			uuid.NewString(),
			barcode,
			name,
			strings.TrimSpace(rec[col["brands"]]),
			strings.TrimSpace(rec[col["quantity"]]),
			strings.TrimSpace(rec[col["categories"]]),
			nullString(grade),
			nullInt(rec[col["nutriscore_score"]]),
			nullInt(rec[col["nova_group"]]),
			nullFloat(rec[col["energy-kcal_100g"]]),
			nullFloat(rec[col["proteins_100g"]]),
			nullFloat(rec[col["carbohydrates_100g"]]),
			nullFloat(rec[col["sugars_100g"]]),
			nullFloat(rec[col["fat_100g"]]),
			nullFloat(rec[col["saturated-fat_100g"]]),
			nullFloat(rec[col["fiber_100g"]]),
			nullFloat(rec[col["salt_100g"]]),
			nullFloat(rec[col["sodium_100g"]]),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert product %s: %w", barcode, err)
		}

		stats.Inserted++
		if stats.Inserted%50_000 == 0 {
			log.Info(ctx, "build progress", "inserted", stats.Inserted)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bundle: %w", err)
	}
	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullFloat parses a feed value tolerantly; empty and unparsable values
// become NULL.
func nullFloat(s string) sql.NullFloat64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullInt(s string) sql.NullInt64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullInt64{}
	}
	// Scores occasionally arrive as "14.0".
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
