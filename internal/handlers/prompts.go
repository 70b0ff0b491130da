package handlers

import (
	"encoding/json"
	"net/http"

	"daybook/internal/assistant"
)

// Prompts returns the canned writing prompt for ?type=, defaulting to
// the daily prompt.
func Prompts(w http.ResponseWriter, r *http.Request) {
	prompt := assistant.PromptFor(r.URL.Query().Get("type"))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prompt)
}
