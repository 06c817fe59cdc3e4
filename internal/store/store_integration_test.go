//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func strPtr(s string) *string { return &s }

func TestIntegration_RecordAndCountGenerations(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	sessionID := "integration-test-" + uuid.New().String()[:8]

	slots := dialogue.Slots{
		TargetPerson:  strPtr("女儿"),
		Gender:        strPtr("female"),
		AestheticTags: dialogue.Tags{"优雅"},
	}
	recs := []dialogue.Recommendation{
		{Name: "Aria", Meaning: "melody", StyleTags: []string{"优雅", "音乐"}, Reason: "soft"},
		{Name: "Clara", Meaning: "bright", Reason: "classic"},
	}

	id, err := s.RecordGeneration(ctx, sessionID, "gpt-3.5-turbo", slots, recs)
	if err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil generation ID")
	}

	var gotSession, gotModel string
	var gotSlots dialogue.Slots
	err = s.pool.QueryRow(ctx,
		`SELECT session_id, model, slots FROM name_generations WHERE id = $1`, id,
	).Scan(&gotSession, &gotModel, &gotSlots)
	if err != nil {
		t.Fatalf("query generation failed: %v", err)
	}
	if gotSession != sessionID {
		t.Errorf("expected session %q, got %q", sessionID, gotSession)
	}
	if gotModel != "gpt-3.5-turbo" {
		t.Errorf("expected model gpt-3.5-turbo, got %q", gotModel)
	}
	if gotSlots.TargetPerson == nil || *gotSlots.TargetPerson != "女儿" {
		t.Errorf("expected target_person 女儿, got %v", gotSlots.TargetPerson)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT name, style_tags FROM generated_names WHERE generation_id = $1 ORDER BY position`, id)
	if err != nil {
		t.Fatalf("query names failed: %v", err)
	}
	defer rows.Close()

	var names []string
	var firstTags []string
	for rows.Next() {
		var name string
		var tags []string
		if err := rows.Scan(&name, &tags); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if len(names) == 0 {
			firstTags = tags
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate names failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Aria" || names[1] != "Clara" {
		t.Errorf("expected names in order [Aria Clara], got %v", names)
	}
	if len(firstTags) != 2 {
		t.Errorf("expected 2 style tags, got %v", firstTags)
	}

	n, err := s.CountSessionGenerations(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountSessionGenerations failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 generation, got %d", n)
	}

	if _, err := s.RecordGeneration(ctx, sessionID, "gpt-3.5-turbo", slots, recs[:1]); err != nil {
		t.Fatalf("second RecordGeneration failed: %v", err)
	}
	n, err = s.CountSessionGenerations(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountSessionGenerations failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 generations, got %d", n)
	}
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}
