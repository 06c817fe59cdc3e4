// Package namegen is the dedicated name-generation call: one prompt built from
// the preference slots, one model call, a strict parse of five
// recommendations.
package namegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
	"github.com/MikeSquared-Agency/namepal/internal/hermes"
	"github.com/MikeSquared-Agency/namepal/internal/llm"
)

// ErrUnparseable means the model answered but no recommendation list could
// be read from it.
var ErrUnparseable = errors.New("unparseable recommendations")

var generateParams = llm.Params{MaxTokens: 1500, Temperature: 0.8, JSON: true}

// Recorder persists a successful generation and counts a session's
// generations. *store.Store satisfies it.
type Recorder interface {
	RecordGeneration(ctx context.Context, sessionID, model string, slots dialogue.Slots, recs []dialogue.Recommendation) (uuid.UUID, error)
	CountSessionGenerations(ctx context.Context, sessionID string) (int, error)
}

// EventPublisher receives generation events. *hermes.Client satisfies it.
type EventPublisher interface {
	Publish(subject string, data any) error
}

type Config struct {
	Model       string
	Timeout     time.Duration
	AnalyticsID string
}

type Generator struct {
	llm      llm.Client
	recorder Recorder
	events   EventPublisher
	cfg      Config
	logger   *slog.Logger
}

// New builds a Generator. recorder and events may be nil.
func New(client llm.Client, recorder Recorder, events EventPublisher, cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		llm:      client,
		recorder: recorder,
		events:   events,
		cfg:      cfg,
		logger:   logger,
	}
}

type generationResponse struct {
	Recommendations []dialogue.Recommendation `json:"recommendations"`
}

// Generate asks the model for five recommendations matching slots. There is
// no retry; a reply that cannot be parsed yields ErrUnparseable.
func (g *Generator) Generate(ctx context.Context, sessionID string, slots dialogue.Slots) ([]dialogue.Recommendation, error) {
	slots = slots.Normalize()
	prompt := buildPrompt(slots)

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	g.logger.Info("generating names",
		"session_id", sessionID,
		"model", g.cfg.Model,
		"prompt_len", len(prompt),
	)

	raw, err := g.llm.Complete(ctx, "", []llm.Message{{Role: llm.RoleUser, Content: prompt}}, generateParams)
	if err != nil {
		return nil, fmt.Errorf("llm generation: %w", err)
	}

	recs, err := parseRecommendations(raw)
	if err != nil {
		g.logger.Error("failed to parse recommendations",
			"session_id", sessionID,
			"error", err,
		)
		g.logger.Debug("generation model output", "session_id", sessionID, "raw", raw)
		return nil, err
	}

	g.logger.Info("generation complete",
		"session_id", sessionID,
		"recommendations", len(recs),
	)

	generationID, ordinal := g.record(ctx, sessionID, slots, recs)
	g.publish(sessionID, generationID, ordinal, slots, recs)
	return recs, nil
}

// record stores the generation and returns its id and its position among the
// session's generations. Both are zero when nothing was stored.
func (g *Generator) record(ctx context.Context, sessionID string, slots dialogue.Slots, recs []dialogue.Recommendation) (uuid.UUID, int) {
	if g.recorder == nil || len(recs) == 0 {
		return uuid.Nil, 0
	}

	id, err := g.recorder.RecordGeneration(ctx, sessionID, g.cfg.Model, slots, recs)
	if err != nil {
		g.logger.Warn("failed to record generation", "session_id", sessionID, "error", err)
		return uuid.Nil, 0
	}

	n, err := g.recorder.CountSessionGenerations(ctx, sessionID)
	if err != nil {
		g.logger.Warn("failed to count session generations", "session_id", sessionID, "error", err)
		return id, 0
	}
	return id, n
}

// parseRecommendations reads the recommendation list from raw, tolerating
// prose or code fences around the JSON object. A missing list is empty, not
// an error.
func parseRecommendations(raw string) ([]dialogue.Recommendation, error) {
	candidate := strings.TrimSpace(raw)
	if !strings.HasPrefix(candidate, "{") {
		candidate = dialogue.OutermostObject(raw)
	}
	if candidate == "" {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrUnparseable)
	}

	var resp generationResponse
	if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if resp.Recommendations == nil {
		return []dialogue.Recommendation{}, nil
	}
	return resp.Recommendations, nil
}

func (g *Generator) publish(sessionID string, generationID uuid.UUID, ordinal int, slots dialogue.Slots, recs []dialogue.Recommendation) {
	if g.events == nil {
		return
	}

	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}

	evt := hermes.GenerationEvent{
		SessionID:    sessionID,
		Ordinal:      ordinal,
		Model:        g.cfg.Model,
		Names:        names,
		TargetPerson: text(slots.TargetPerson, ""),
		Gender:       text(slots.Gender, ""),
		AnalyticsID:  g.cfg.AnalyticsID,
		Timestamp:    time.Now().UTC(),
	}
	if generationID != uuid.Nil {
		evt.GenerationID = generationID.String()
	}

	if err := g.events.Publish(hermes.SubjectNamesGenerated, evt); err != nil {
		g.logger.Warn("failed to publish generation event", "session_id", sessionID, "error", err)
	}
}
