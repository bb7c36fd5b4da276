package goals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutridiary/internal/common"
	"nutridiary/internal/dbx"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert replaces the whole row; goals are always written as a unit from the
// onboarding/goals flow.
func (r *SQLiteRepository) Upsert(ctx context.Context, g *models.UserGoals) error {
	query := `INSERT INTO user_goals
			(user_id, sex, birth_year, height_cm, activity_level, weight_target_kg,
			 calories_target, protein_target_g, carbs_target_g, fat_target_g, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				sex = excluded.sex,
				birth_year = excluded.birth_year,
				height_cm = excluded.height_cm,
				activity_level = excluded.activity_level,
				weight_target_kg = excluded.weight_target_kg,
				calories_target = excluded.calories_target,
				protein_target_g = excluded.protein_target_g,
				carbs_target_g = excluded.carbs_target_g,
				fat_target_g = excluded.fat_target_g,
				updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		g.UserID, string(g.Sex), g.BirthYear, g.HeightCm, g.ActivityLevel, g.WeightTargetKg,
		g.CaloriesTarget, g.ProteinTargetG, g.CarbsTargetG, g.FatTargetG, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert goals: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUserID(ctx context.Context, userID string) (*models.UserGoals, error) {
	query := `SELECT user_id, sex, birth_year, height_cm, activity_level, weight_target_kg,
			calories_target, protein_target_g, carbs_target_g, fat_target_g, updated_at
			FROM user_goals WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	g := &models.UserGoals{}
	var sex string
	err := row.Scan(&g.UserID, &sex, &g.BirthYear, &g.HeightCm, &g.ActivityLevel, &g.WeightTargetKg,
		&g.CaloriesTarget, &g.ProteinTargetG, &g.CarbsTargetG, &g.FatTargetG, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan goals: %w", err)
	}
	g.Sex = nutrition.Sex(sex)
	return g, nil
}
