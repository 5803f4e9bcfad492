// Package evaluator scores free-text tactical prompts into a damage bonus.
// The real scorer is a remote inference service; every failure mode degrades
// to a small fixed bonus so the turn loop is never blocked on it.
package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// FallbackBonus is returned whenever the remote scorer fails.
	FallbackBonus = 0.1
	// MaxBonus caps the multiplier at +50% damage.
	MaxBonus = 0.5
)

// Request carries the battle context the scorer grades against.
type Request struct {
	Prompt       string `json:"prompt"`
	SkillName    string `json:"skill_name"`
	SkillType    string `json:"skill_type"`
	DefenderName string `json:"defender_name"`
	DefenderType string `json:"defender_type"`
}

// Evaluator scores a prompt into a bonus multiplier in [0, MaxBonus].
// Implementations never return an error; failures degrade internally.
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) float64
}

// HTTPEvaluator posts the request to an inference endpoint that replies
// {"score": 0..5}; the score maps to a bonus in tenths.
type HTTPEvaluator struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewHTTP(url string, timeout time.Duration, log *zap.Logger) *HTTPEvaluator {
	return &HTTPEvaluator{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (e *HTTPEvaluator) Evaluate(ctx context.Context, req Request) float64 {
	// Empty or throwaway prompts earn nothing; don't spend an API call.
	if len(strings.TrimSpace(req.Prompt)) < 3 {
		return 0
	}

	body, err := json.Marshal(req)
	if err != nil {
		return FallbackBonus
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		e.log.Warn("evaluator request build failed", zap.Error(err))
		return FallbackBonus
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		e.log.Warn("evaluator call failed", zap.Error(err))
		return FallbackBonus
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.log.Warn("evaluator returned non-200", zap.Int("status", resp.StatusCode))
		return FallbackBonus
	}

	var out struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		e.log.Warn("evaluator response unparseable", zap.Error(err))
		return FallbackBonus
	}

	return Clamp(float64(out.Score) / 10)
}

// Fixed always returns the same bonus. Used when no evaluator endpoint is
// configured, and in tests.
type Fixed struct {
	Bonus float64
}

func (f Fixed) Evaluate(context.Context, Request) float64 { return Clamp(f.Bonus) }

// Clamp bounds a bonus to [0, MaxBonus].
func Clamp(bonus float64) float64 {
	if bonus < 0 {
		return 0
	}
	if bonus > MaxBonus {
		return MaxBonus
	}
	return bonus
}
