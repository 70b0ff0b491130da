package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionServer(t *testing.T, reply func(prompt string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		prompt := req.Messages[len(req.Messages)-1].Content

		resp := apiResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message ChatMessage `json:"message"`
		}{Message: ChatMessage{Role: "assistant", Content: reply(prompt)}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAssistant(t *testing.T, baseURL string) *Assistant {
	t.Helper()
	a, err := New("test-key", "test-model", baseURL)
	if err != nil {
		t.Fatalf("new assistant: %v", err)
	}
	return a
}

func TestProcessEntryFillsAllFields(t *testing.T) {
	srv := completionServer(t, func(prompt string) string {
		switch {
		case strings.Contains(prompt, "concise, meaningful title"):
			return `"A Walk to Remember"`
		case strings.Contains(prompt, "emotional tone"):
			return "Mood: Peaceful\nThemes: nature, rest\nExplanation: A calm day outdoors."
		case strings.Contains(prompt, "Extract relevant tags"):
			return "Nature, walking , , health, rest, extra-one, extra-two"
		default:
			return "  You seem to recharge outdoors.  "
		}
	})
	defer srv.Close()

	a := newTestAssistant(t, srv.URL)
	cls, err := a.ProcessEntry(context.Background(), "Went for a long walk in the forest.")
	if err != nil {
		t.Fatalf("process entry: %v", err)
	}

	if cls.Title != "A Walk to Remember" {
		t.Fatalf("unexpected title %q", cls.Title)
	}
	if cls.Mood != "peaceful" {
		t.Fatalf("unexpected mood %q", cls.Mood)
	}
	want := []string{"nature", "walking", "health", "rest", "extra-one"}
	if len(cls.Tags) != len(want) {
		t.Fatalf("expected %d tags, got %v", len(want), cls.Tags)
	}
	for i, tag := range want {
		if cls.Tags[i] != tag {
			t.Fatalf("tag %d: expected %q, got %q", i, tag, cls.Tags[i])
		}
	}
	if cls.Insights != "You seem to recharge outdoors." {
		t.Fatalf("unexpected insights %q", cls.Insights)
	}
}

func TestProcessEntryUnavailableService(t *testing.T) {
	srv := completionServer(t, func(string) string { return "x" })
	srv.Close() // connection refused from here on

	a := newTestAssistant(t, srv.URL)
	if _, err := a.ProcessEntry(context.Background(), "content"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcessEntryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := newTestAssistant(t, srv.URL)
	if _, err := a.ProcessEntry(context.Background(), "content"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestParseMoodResponseDefaults(t *testing.T) {
	analysis := parseMoodResponse("the model ignored the format entirely")
	if analysis.Mood != "neutral" || analysis.Themes != "general" {
		t.Fatalf("expected neutral defaults, got %+v", analysis)
	}

	analysis = parseMoodResponse("Mood: Happy\nExplanation: good news all day")
	if analysis.Mood != "happy" {
		t.Fatalf("expected happy, got %q", analysis.Mood)
	}
	if analysis.Themes != "general" {
		t.Fatalf("expected default themes, got %q", analysis.Themes)
	}
	if analysis.Explanation != "good news all day" {
		t.Fatalf("unexpected explanation %q", analysis.Explanation)
	}
}

func TestChatReplaysHistory(t *testing.T) {
	var gotMessages []ChatMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotMessages = req.Messages
		resp := apiResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message ChatMessage `json:"message"`
		}{Message: ChatMessage{Role: "assistant", Content: "How did that make you feel?"}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	a := newTestAssistant(t, srv.URL)
	history := []ChatMessage{
		{Role: "user", Content: "I had a rough week."},
		{Role: "assistant", Content: "What made it rough?"},
	}
	reply, err := a.Chat(context.Background(), history, "Mostly deadlines.")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "How did that make you feel?" {
		t.Fatalf("unexpected reply %q", reply)
	}

	if len(gotMessages) != 4 {
		t.Fatalf("expected system + history + input, got %d messages", len(gotMessages))
	}
	if gotMessages[0].Role != "system" {
		t.Fatalf("expected leading system message, got %+v", gotMessages[0])
	}
	if gotMessages[3].Content != "Mostly deadlines." {
		t.Fatalf("expected trailing user input, got %+v", gotMessages[3])
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", "", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
