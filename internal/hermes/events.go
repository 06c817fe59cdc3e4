package hermes

import "time"

const (
	// SubjectChatTurn carries one event per answered /chat request.
	SubjectChatTurn = "namepal.chat.turn"

	// SubjectNamesGenerated carries one event per successful generation call.
	SubjectNamesGenerated = "namepal.names.generated"
)

// TurnEvent summarises a conversation turn. It never carries user text.
type TurnEvent struct {
	SessionID        string    `json:"session_id"`
	Kind             string    `json:"kind"` // opening | reset | answered | degraded
	Attempts         int       `json:"attempts"`
	NormalizeOutcome string    `json:"normalize_outcome,omitempty"`
	CanGenerate      bool      `json:"can_generate"`
	MissingSlots     int       `json:"missing_slots"`
	Recommendations  int       `json:"recommendations"`
	AnalyticsID      string    `json:"analytics_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// GenerationEvent is emitted after the dedicated generation call returned
// parseable recommendations.
type GenerationEvent struct {
	SessionID    string    `json:"session_id"`
	GenerationID string    `json:"generation_id,omitempty"`
	Ordinal      int       `json:"session_generation,omitempty"` // 1 for the session's first generation
	Model        string    `json:"model"`
	Names        []string  `json:"names"`
	TargetPerson string    `json:"target_person,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	AnalyticsID  string    `json:"analytics_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
