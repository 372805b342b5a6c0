package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerationRecord describes one Generate call for the operator log.
type GenerationRecord struct {
	ID             uuid.UUID
	BabyAge        string
	ParentingStyle string
	Source         string
	Reason         string
	Model          string
	Duration       time.Duration
}

// GenerationLog persists generation records.
type GenerationLog interface {
	Record(ctx context.Context, rec GenerationRecord) error
}

// PostgresGenerationLog writes records to plan_generation_logs.
type PostgresGenerationLog struct {
	db *pgxpool.Pool
}

func NewPostgresGenerationLog(db *pgxpool.Pool) *PostgresGenerationLog {
	return &PostgresGenerationLog{db: db}
}

func (l *PostgresGenerationLog) Record(ctx context.Context, rec GenerationRecord) error {
	if l.db == nil {
		return nil
	}
	_, err := l.db.Exec(ctx, `
		INSERT INTO plan_generation_logs (id, baby_age, parenting_style, source, reason, model, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.BabyAge, rec.ParentingStyle, rec.Source, rec.Reason, rec.Model, rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("inserting generation log: %w", err)
	}
	return nil
}
