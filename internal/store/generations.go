package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
)

// RecordGeneration writes one generation and its recommendations in a single
// transaction. Tables: name_generations, generated_names.
func (s *Store) RecordGeneration(ctx context.Context, sessionID, model string, slots dialogue.Slots, recs []dialogue.Recommendation) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	generationID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO name_generations (id, session_id, model, slots, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		generationID, sessionID, model, slots,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert generation: %w", err)
	}

	for i, r := range recs {
		tags := []string(r.StyleTags)
		if tags == nil {
			tags = []string{}
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO generated_names (id, generation_id, position, name, pronunciation, meaning, style_tags, popularity, chinese_relation, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(), generationID, i, r.Name, r.Pronunciation, r.Meaning, tags, r.Popularity, r.ChineseRelation, r.Reason,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert name %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return generationID, nil
}

// CountSessionGenerations returns how many generations a session has made.
func (s *Store) CountSessionGenerations(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM name_generations WHERE session_id = $1`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return n, nil
}
