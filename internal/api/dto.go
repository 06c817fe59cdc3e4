package api

import "github.com/MikeSquared-Agency/namepal/internal/dialogue"

const (
	msgMissingParams   = "缺少必要参数"
	msgGenerationFail  = "无法生成名字推荐"
	msgInternalFailure = "服务器内部错误"
)

type chatRequest struct {
	ChatContent string              `json:"chatContent"`
	ChatHistory []dialogue.ChatTurn `json:"chatHistory"`
	SessionID   string              `json:"sessionId"`
}

// openingResponse answers an empty history or a reset command.
type openingResponse struct {
	ChatContent  string         `json:"chatContent"`
	QuickReplies []string       `json:"quickReplies"`
	Variant      int            `json:"variant"`
	Slots        dialogue.Slots `json:"slots"`
	MissingSlots []string       `json:"missing_slots"`
	CanGenerate  bool           `json:"can_generate"`
	SessionID    string         `json:"sessionId"`
	IsReset      bool           `json:"isReset,omitempty"`
}

type turnResponse struct {
	ChatContent        string                `json:"chatContent"`
	QuickReplies       []string              `json:"quickReplies"`
	Slots              dialogue.Slots        `json:"slots"`
	MissingSlots       []string              `json:"missing_slots"`
	CanGenerate        bool                  `json:"can_generate"`
	SessionID          string                `json:"sessionId"`
	Recommendations    []dialogue.Suggestion `json:"recommendations"`
	HasRecommendations bool                  `json:"hasRecommendations"`
}

// degradedResponse is the apology returned once model retries are spent.
type degradedResponse struct {
	ChatContent  string   `json:"chatContent"`
	QuickReplies []string `json:"quickReplies"`
	SessionID    string   `json:"sessionId"`
}

type generateRequest struct {
	SessionID string          `json:"sessionId"`
	Slots     *dialogue.Slots `json:"slots"`
}

type generateResponse struct {
	Recommendations []dialogue.Recommendation `json:"recommendations"`
}

type healthResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
