package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shiva143-debug/backend-exp/internal/config"
)

func TestGeneratorFunc(t *testing.T) {
	var got string
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return `{"action":"reply","reply":"hi"}`, nil
	})

	out, err := gen.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected prompt to be forwarded, got %q", got)
	}
	if !strings.Contains(out, "reply") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestOpenAIClientGenerate(t *testing.T) {
	t.Run("returns_first_choice", func(t *testing.T) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", auth)
			}
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &req)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"action\":\"reply\",\"reply\":\"hi\"}"},"finish_reason":"stop"}]}`))
		}))
		defer srv.Close()

		client, err := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "deepseek-chat"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := client.Generate(context.Background(), "what did I spend?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != `{"action":"reply","reply":"hi"}` {
			t.Errorf("unexpected output %q", out)
		}
		if req.Model != "deepseek-chat" {
			t.Errorf("expected model deepseek-chat, got %s", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "what did I spend?" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}
	})

	t.Run("empty_choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
		}))
		defer srv.Close()

		client, err := NewOpenAIClient(OpenAIOptions{APIKey: "k", BaseURL: srv.URL + "/v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = client.Generate(context.Background(), "hi")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("upstream_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		}))
		defer srv.Close()

		client, err := NewOpenAIClient(OpenAIOptions{APIKey: "k", BaseURL: srv.URL + "/v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := client.Generate(context.Background(), "hi"); err == nil {
			t.Fatal("expected error from upstream failure")
		}
	})

	t.Run("requires_api_key", func(t *testing.T) {
		if _, err := NewOpenAIClient(OpenAIOptions{}); err == nil {
			t.Fatal("expected error without api key")
		}
	})
}

func TestGeminiClientGenerate(t *testing.T) {
	t.Run("returns_candidate_text", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"action\":\"reply\",\"reply\":\"hello\"}"}]},"finishReason":"STOP"}]}`))
		}))
		defer srv.Close()

		client, err := NewGeminiClient(context.Background(), GeminiOptions{
			APIKey:     "test-key",
			BaseURL:    srv.URL + "/",
			HTTPClient: srv.Client(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := client.Generate(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != `{"action":"reply","reply":"hello"}` {
			t.Errorf("unexpected output %q", out)
		}
		if !strings.Contains(gotPath, defaultGeminiModel+":generateContent") {
			t.Errorf("unexpected request path %s", gotPath)
		}
	})

	t.Run("requires_api_key", func(t *testing.T) {
		if _, err := NewGeminiClient(context.Background(), GeminiOptions{}); err == nil {
			t.Fatal("expected error without api key")
		}
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		gen, err := NewFromConfig(context.Background(), &config.Config{
			LLMProvider:  config.ProviderOpenAI,
			OpenAIAPIKey: "k",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := gen.(*OpenAIClient); !ok {
			t.Errorf("expected *OpenAIClient, got %T", gen)
		}
	})

	t.Run("gemini_without_key", func(t *testing.T) {
		_, err := NewFromConfig(context.Background(), &config.Config{LLMProvider: config.ProviderGemini})
		if err == nil {
			t.Fatal("expected error without api key")
		}
	})

	t.Run("unknown_provider", func(t *testing.T) {
		_, err := NewFromConfig(context.Background(), &config.Config{LLMProvider: "other"})
		if err == nil {
			t.Fatal("expected error for unknown provider")
		}
	})
}
