package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/namepal/internal/conversation"
	"github.com/MikeSquared-Agency/namepal/internal/namegen"
)

// handleChat handles POST /chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.logger.Warn("invalid chat request", "request_id", reqID, "error", err)
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	}

	out, err := s.chat.Turn(r.Context(), conversation.TurnInput{
		Utterance: req.ChatContent,
		History:   req.ChatHistory,
		SessionID: req.SessionID,
	})
	switch {
	case errors.Is(err, conversation.ErrMissingUtterance):
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	case err != nil:
		s.logger.Error("chat turn failed", "request_id", reqID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalFailure)
		return
	}

	switch out.Kind {
	case conversation.KindOpening, conversation.KindReset:
		writeJSON(w, http.StatusOK, openingResponse{
			ChatContent:  out.Answer,
			QuickReplies: out.QuickReplies,
			Variant:      out.Variant,
			Slots:        out.Slots,
			MissingSlots: out.MissingSlots,
			CanGenerate:  out.CanGenerate,
			SessionID:    out.SessionID,
			IsReset:      out.Kind == conversation.KindReset,
		})
	case conversation.KindDegraded:
		writeJSON(w, http.StatusOK, degradedResponse{
			ChatContent:  out.Answer,
			QuickReplies: out.QuickReplies,
			SessionID:    out.SessionID,
		})
	default:
		writeJSON(w, http.StatusOK, turnResponse{
			ChatContent:        out.Answer,
			QuickReplies:       out.QuickReplies,
			Slots:              out.Slots,
			MissingSlots:       out.MissingSlots,
			CanGenerate:        out.CanGenerate,
			SessionID:          out.SessionID,
			Recommendations:    out.Recommendations,
			HasRecommendations: len(out.Recommendations) > 0,
		})
	}
}

// handleGenerateNames handles POST /generate-names.
func (s *Server) handleGenerateNames(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.logger.Warn("invalid generate request", "request_id", reqID, "error", err)
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	}
	if strings.TrimSpace(req.SessionID) == "" || req.Slots == nil {
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	}

	recs, err := s.names.Generate(r.Context(), req.SessionID, *req.Slots)
	switch {
	case errors.Is(err, namegen.ErrUnparseable):
		s.logger.Error("generation unparseable", "request_id", reqID, "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, msgGenerationFail)
		return
	case err != nil:
		s.logger.Error("generation failed", "request_id", reqID, "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalFailure)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Recommendations: recs})
}
