package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the structured reply the chat model is instructed to emit.
type Payload struct {
	Answer       string   `json:"answer"`
	QuickReplies []string `json:"quickReplies"`
	Slots        Slots    `json:"slots"`
	MissingSlots []string `json:"missing_slots"`
	CanGenerate  Flag     `json:"can_generate"`
}

// UnmarshalJSON decodes each field on its own, so one wrongly typed field
// leaves the rest of the reply intact. Only a non-object is an error.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	*p = Payload{}
	if answer := looseText(fields["answer"]); answer != nil {
		p.Answer = *answer
	}
	if replies := looseTags(fields["quickReplies"]); replies != nil {
		p.QuickReplies = []string(replies)
	}
	if missing := looseTags(fields["missing_slots"]); missing != nil {
		p.MissingSlots = []string(missing)
	}
	if raw, ok := fields["slots"]; ok {
		var slots Slots
		if err := slots.UnmarshalJSON(raw); err == nil {
			p.Slots = slots
		}
	}
	if raw, ok := fields["can_generate"]; ok {
		_ = p.CanGenerate.UnmarshalJSON(raw)
	}
	return nil
}

// Flag is a boolean that also accepts "true"/"false" strings and null, which
// models occasionally emit instead of a JSON bool.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.ToLower(strings.TrimSpace(string(data))), `"`) {
	case "true", "1", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// NormalizeOutcome records which step produced the payload.
type NormalizeOutcome string

const (
	OutcomeDirect   NormalizeOutcome = "direct"
	OutcomeEmbedded NormalizeOutcome = "embedded"
	OutcomeFallback NormalizeOutcome = "fallback"
)

const fallbackAnswerLimit = 500

// FallbackQuickReplies are offered when the model reply could not be read.
var FallbackQuickReplies = []string{"再试一次", "告诉我更多", "重新开始", "需要帮助"}

// Normalize coerces raw model text into a Payload. It tries the whole text,
// then the span from the first '{' to the last '}', and otherwise builds a
// fallback payload from the raw text. It never fails.
func Normalize(raw string) (Payload, NormalizeOutcome) {
	if p, ok := decodeObject(raw); ok {
		return p, OutcomeDirect
	}

	if embedded := OutermostObject(raw); embedded != "" {
		if p, ok := decodeObject(embedded); ok {
			return p, OutcomeEmbedded
		}
	}

	return fallbackPayload(raw), OutcomeFallback
}

func decodeObject(s string) (Payload, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return Payload{}, false
	}
	var p Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return Payload{}, false
	}
	return p, true
}

// OutermostObject returns the greedy span from the first '{' to the last '}',
// or "" when there is none.
func OutermostObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func fallbackPayload(raw string) Payload {
	answer := raw
	if runes := []rune(raw); len(runes) > fallbackAnswerLimit {
		answer = string(runes[:fallbackAnswerLimit]) + "..."
	}

	replies := make([]string, len(FallbackQuickReplies))
	copy(replies, FallbackQuickReplies)

	return Payload{
		Answer:       answer,
		QuickReplies: replies,
		Slots:        Slots{},
		MissingSlots: []string{SlotTargetPerson, SlotGender},
		CanGenerate:  false,
	}
}
