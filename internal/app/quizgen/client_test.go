// internal/app/quizgen/client_test.go
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func validModelJSON() string {
	type q struct {
		QuestionText  string   `json:"questionText"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
	}
	var qs []q
	for i := 0; i < 5; i++ {
		qs = append(qs, q{
			QuestionText:  fmt.Sprintf("Soru %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "B",
		})
	}
	raw, _ := json.Marshal(map[string]any{"questions": qs})
	return string(raw)
}

// fakeGemini returns a server that answers every generateContent call with
// the given text as the single candidate part.
func fakeGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerate(t *testing.T) {
	srv := fakeGemini(t, validModelJSON())
	defer srv.Close()

	c := New("test-key", "gemini-2.5-flash", zap.NewNop(), WithBaseURL(srv.URL))
	questions, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("questions: got %d, want 5", len(questions))
	}
	if questions[0].CorrectAnswer != "B" {
		t.Errorf("correctAnswer: got %q", questions[0].CorrectAnswer)
	}
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	srv := fakeGemini(t, "```json\n"+validModelJSON()+"\n```")
	defer srv.Close()

	c := New("test-key", "", zap.NewNop(), WithBaseURL(srv.URL))
	questions, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("questions: got %d, want 5", len(questions))
	}
}

func TestGenerateRejectsWrongQuestionCount(t *testing.T) {
	short := `{"questions":[{"questionText":"Soru","options":["a","b","c","d"],"correctAnswer":"A"}]}`
	srv := fakeGemini(t, short)
	defer srv.Close()

	c := New("test-key", "", zap.NewNop(), WithBaseURL(srv.URL))
	if _, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"}); err == nil {
		t.Fatal("expected schema validation error for one question")
	}
}

func TestGenerateRejectsBadAnswerLetter(t *testing.T) {
	bad := strings.ReplaceAll(validModelJSON(), `"correctAnswer":"B"`, `"correctAnswer":"E"`)
	srv := fakeGemini(t, bad)
	defer srv.Close()

	c := New("test-key", "", zap.NewNop(), WithBaseURL(srv.URL))
	if _, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"}); err == nil {
		t.Fatal("expected schema validation error for answer letter E")
	}
}

func TestGenerateRejectsNonJSON(t *testing.T) {
	srv := fakeGemini(t, "Elbette! İşte beş soruluk bir test...")
	defer srv.Close()

	c := New("test-key", "", zap.NewNop(), WithBaseURL(srv.URL))
	if _, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"}); err == nil {
		t.Fatal("expected error for prose output")
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test-key", "", zap.NewNop(), WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), Input{Topic: "Kesirler", Grade: "5. Sınıf"})
	if err == nil {
		t.Fatal("expected error for non-200 upstream status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	c := New("test-key", "", zap.NewNop())
	if _, err := c.Generate(context.Background(), Input{Grade: "5. Sınıf"}); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestBuildPromptIncludesExtraInstructions(t *testing.T) {
	p := buildPrompt(Input{Topic: "Kesirler", Grade: "5. Sınıf", Prompt: "işlem soruları ağırlıklı olsun"})
	if !strings.Contains(p, "Kesirler") || !strings.Contains(p, "5. Sınıf") {
		t.Error("prompt must name topic and grade")
	}
	if !strings.Contains(p, "işlem soruları ağırlıklı olsun") {
		t.Error("prompt must carry the extra instructions")
	}

	p = buildPrompt(Input{Topic: "Kesirler", Grade: "5. Sınıf"})
	if strings.Contains(p, "additional instructions") {
		t.Error("prompt must omit the extra-instructions line when none are given")
	}
}
