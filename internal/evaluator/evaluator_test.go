package evaluator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testRequest() Request {
	return Request{
		Prompt:       "aim for the exposed core while it charges",
		SkillName:    "Flamethrower",
		SkillType:    "fire",
		DefenderName: "Infernodon",
		DefenderType: "grass",
	}
}

func TestHTTPEvaluatorScoresPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SkillType != "fire" {
			t.Errorf("request missing battle context: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"score": 4})
	}))
	defer srv.Close()

	e := NewHTTP(srv.URL, time.Second, zap.NewNop())
	if got := e.Evaluate(context.Background(), testRequest()); got != 0.4 {
		t.Fatalf("score 4: want bonus 0.4, got %v", got)
	}
}

func TestHTTPEvaluatorShortPromptSkipsCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]int{"score": 5})
	}))
	defer srv.Close()

	e := NewHTTP(srv.URL, time.Second, zap.NewNop())
	req := testRequest()
	req.Prompt = "  a "
	if got := e.Evaluate(context.Background(), req); got != 0 {
		t.Fatalf("throwaway prompt: want 0, got %v", got)
	}
	if calls.Load() != 0 {
		t.Fatal("short prompt should not reach the scorer")
	}
}

func TestHTTPEvaluatorDegradesToFallback(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			e := NewHTTP(srv.URL, time.Second, zap.NewNop())
			if got := e.Evaluate(context.Background(), testRequest()); got != FallbackBonus {
				t.Fatalf("want fallback %v, got %v", FallbackBonus, got)
			}
		})
	}
}

func TestHTTPEvaluatorUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	e := NewHTTP(srv.URL, 100*time.Millisecond, zap.NewNop())
	if got := e.Evaluate(context.Background(), testRequest()); got != FallbackBonus {
		t.Fatalf("want fallback %v, got %v", FallbackBonus, got)
	}
}

func TestHTTPEvaluatorClampsOutOfRangeScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"score": 99})
	}))
	defer srv.Close()

	e := NewHTTP(srv.URL, time.Second, zap.NewNop())
	if got := e.Evaluate(context.Background(), testRequest()); got != MaxBonus {
		t.Fatalf("runaway score: want %v, got %v", MaxBonus, got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.3, 0.3},
		{MaxBonus, MaxBonus},
		{0.9, MaxBonus},
	}
	for _, tc := range cases {
		if got := Clamp(tc.in); got != tc.want {
			t.Fatalf("Clamp(%v): want %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestFixedClamps(t *testing.T) {
	if got := (Fixed{Bonus: 2}).Evaluate(context.Background(), Request{}); got != MaxBonus {
		t.Fatalf("fixed bonus should clamp, got %v", got)
	}
}
