// Package conversation runs one chat turn: command detection, the opening
// branch, the retried model call and the slot-filling recomputation.
package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
	"github.com/MikeSquared-Agency/namepal/internal/hermes"
	"github.com/MikeSquared-Agency/namepal/internal/llm"
)

// ErrMissingUtterance is returned when a turn with history carries no text.
var ErrMissingUtterance = errors.New("missing chat content")

// chat calls favour short, structured answers.
var chatParams = llm.Params{MaxTokens: 800, Temperature: 0.7, JSON: true}

// EventPublisher receives turn events. *hermes.Client satisfies it.
type EventPublisher interface {
	Publish(subject string, data any) error
}

// Kind classifies how a turn was answered.
type Kind string

const (
	KindOpening  Kind = "opening"
	KindReset    Kind = "reset"
	KindAnswered Kind = "answered"
	KindDegraded Kind = "degraded"
)

type TurnInput struct {
	Utterance string
	History   []dialogue.ChatTurn
	SessionID string
}

type TurnOutput struct {
	Kind            Kind
	Answer          string
	QuickReplies    []string
	Slots           dialogue.Slots
	MissingSlots    []string
	CanGenerate     bool
	SessionID       string
	Recommendations []dialogue.Suggestion
	Variant         int // opening and reset only
	Attempts        int
	Outcome         dialogue.NormalizeOutcome
}

type Config struct {
	Retry llm.RetryPolicy
	// Deadline bounds the whole retried model call. Zero leaves it to the
	// caller's context.
	Deadline    time.Duration
	AnalyticsID string
}

type Service struct {
	llm    llm.Client
	rng    dialogue.RandomSource
	events EventPublisher
	cfg    Config
	logger *slog.Logger
}

// New builds a Service. events may be nil.
func New(client llm.Client, rng dialogue.RandomSource, events EventPublisher, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		llm:    client,
		rng:    rng,
		events: events,
		cfg:    cfg,
		logger: logger,
	}
}

// Turn answers one chat request. Model failures never surface as errors; the
// only error is ErrMissingUtterance.
func (s *Service) Turn(ctx context.Context, in TurnInput) (*TurnOutput, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	cmds := dialogue.DetectCommands(in.Utterance)

	if cmds.Reset || len(in.History) == 0 {
		out := s.opening(sessionID, cmds.Reset)
		s.logger.Info("chat opening",
			"session_id", sessionID,
			"reset", cmds.Reset,
			"variant", out.Variant,
		)
		s.publish(out)
		return out, nil
	}

	if strings.TrimSpace(in.Utterance) == "" {
		return nil, ErrMissingUtterance
	}

	messages := buildMessages(in.History, in.Utterance, cmds)

	callCtx := ctx
	if s.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Deadline)
		defer cancel()
	}

	system := systemPrompt + "\n\n" + jsonReminder
	raw, attempts, err := llm.CompleteWithRetry(callCtx, s.llm, system, messages, chatParams, s.cfg.Retry)
	if err != nil {
		s.logger.Error("chat model unavailable",
			"session_id", sessionID,
			"attempts", attempts,
			"error", err,
		)
		out := degraded(sessionID, attempts)
		s.publish(out)
		return out, nil
	}

	s.logger.Debug("chat model output", "session_id", sessionID, "raw", raw)

	payload, outcome := dialogue.Normalize(raw)
	if outcome == dialogue.OutcomeFallback {
		s.logger.Warn("chat reply was not structured", "session_id", sessionID, "raw_len", len(raw))
	}

	slots := payload.Slots.Normalize()
	missing := dialogue.RecomputeMissing(slots, payload.MissingSlots)
	suggestions := dialogue.ExtractSuggestions(payload.Answer)

	quick := payload.QuickReplies
	if quick == nil {
		quick = []string{}
	}

	out := &TurnOutput{
		Kind:            KindAnswered,
		Answer:          payload.Answer,
		QuickReplies:    quick,
		Slots:           slots,
		MissingSlots:    missing,
		CanGenerate:     dialogue.CanGenerate(cmds, slots, bool(payload.CanGenerate), missing),
		SessionID:       sessionID,
		Recommendations: suggestions,
		Attempts:        attempts,
		Outcome:         outcome,
	}

	s.logger.Info("chat turn",
		"session_id", sessionID,
		"attempts", attempts,
		"outcome", outcome,
		"missing", len(missing),
		"can_generate", out.CanGenerate,
		"generate_cmd", cmds.Generate,
		"change_style_cmd", cmds.ChangeStyle,
	)
	s.publish(out)
	return out, nil
}

func (s *Service) opening(sessionID string, reset bool) *TurnOutput {
	i, o := dialogue.PickOpening(dialogue.Openings, s.rng)

	out := &TurnOutput{
		Kind:            KindOpening,
		Answer:          o.Text,
		QuickReplies:    append([]string(nil), o.QuickReplies...),
		MissingSlots:    dialogue.AllSlotNames(),
		SessionID:       sessionID,
		Recommendations: []dialogue.Suggestion{},
		Variant:         i,
	}
	if reset {
		out.Kind = KindReset
		out.Answer = resetNotice + o.Text
	}
	return out
}

func degraded(sessionID string, attempts int) *TurnOutput {
	return &TurnOutput{
		Kind:            KindDegraded,
		Answer:          apologyText,
		QuickReplies:    append([]string(nil), dialogue.FallbackQuickReplies...),
		SessionID:       sessionID,
		Recommendations: []dialogue.Suggestion{},
		Attempts:        attempts,
	}
}

// buildMessages converts client history into model messages. Unknown roles
// are sent as user turns and blank turns are dropped.
func buildMessages(history []dialogue.ChatTurn, utterance string, cmds dialogue.Commands) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+3)
	for _, turn := range history {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: normalizeRole(turn.Role), Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: utterance})

	if cmds.Generate {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: generateInstruction})
	}
	if cmds.ChangeStyle {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: changeStyleInstruction})
	}
	return messages
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case llm.RoleAssistant:
		return llm.RoleAssistant
	case llm.RoleSystem:
		return llm.RoleSystem
	default:
		return llm.RoleUser
	}
}

func (s *Service) publish(out *TurnOutput) {
	if s.events == nil {
		return
	}
	evt := hermes.TurnEvent{
		SessionID:        out.SessionID,
		Kind:             string(out.Kind),
		Attempts:         out.Attempts,
		NormalizeOutcome: string(out.Outcome),
		CanGenerate:      out.CanGenerate,
		MissingSlots:     len(out.MissingSlots),
		Recommendations:  len(out.Recommendations),
		AnalyticsID:      s.cfg.AnalyticsID,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.events.Publish(hermes.SubjectChatTurn, evt); err != nil {
		s.logger.Warn("failed to publish turn event", "session_id", out.SessionID, "error", err)
	}
}
