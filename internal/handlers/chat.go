package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"daybook/internal/assistant"
)

type ChatHandler struct {
	ai *assistant.Assistant // nil when AI is not configured
}

func NewChatHandler(ai *assistant.Assistant) *ChatHandler {
	return &ChatHandler{ai: ai}
}

type chatRequest struct {
	Message string                  `json:"message"`
	History []assistant.ChatMessage `json:"history,omitempty"`
}

// Chat relays one conversational turn to the assistant. Without an
// assistant the endpoint reports the feature as unavailable rather than
// failing the whole app.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		http.Error(w, "AI features are not available", http.StatusServiceUnavailable)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.ai.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		http.Error(w, "AI is unavailable right now", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}
