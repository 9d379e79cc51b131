// Package openai asks a chat-completion model to pick hook moments from the
// transcript. It is one pluggable Oracle; the pipeline falls back to the
// heuristic scorer when no API key is configured.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gopenai "github.com/sashabaranov/go-openai"

	"github.com/shortforge/hookcut/internal/ports"
	"github.com/shortforge/hookcut/internal/types"
)

const requestTimeout = 90 * time.Second

const systemPrompt = "You are a viral video expert. Always respond with valid JSON only."

type Adapter struct {
	cli   *gopenai.Client
	model string
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Adapter{cli: gopenai.NewClientWithConfig(cfg), model: model}
}

// Score makes a single completion call and returns the model's raw hook
// suggestions. No retries here; the orchestrator owns retry policy. The
// response is treated as untrusted: whatever parses is passed upward for the
// normalizer to validate against the transcript.
func (a *Adapter) Score(ctx context.Context, req ports.ScoreRequest) ([]types.RawCandidate, error) {
	prompt := buildPrompt(req)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.cli.CreateChatCompletion(reqCtx, gopenai.ChatCompletionRequest{
		Model: a.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: gopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	content := resp.Choices[0].Message.Content
	log.Debug().Int("bytes", len(content)).Msg("oracle responded")

	return parseHooks(content)
}

func buildPrompt(req ports.ScoreRequest) string {
	var tb strings.Builder
	for _, ln := range req.Lines {
		fmt.Fprintf(&tb, "[%.1fs - %.1fs] %s\n", ln.StartSec, ln.EndSec, ln.Text)
	}

	return fmt.Sprintf(`You are an expert viral video editor who specializes in creating attention-grabbing short-form content.

Analyze this transcript and identify the TOP %d viral hook moments that would make amazing TikTok/YouTube Shorts.

TRANSCRIPT:
%s
For each hook, provide:
1. start_time: The exact start timestamp in seconds
2. end_time: The exact end timestamp in seconds
3. hook_text: The exact text of the hook moment
4. virality_score: Rating from 1-10 (10 = most viral potential)
5. hook_type: One of ["opening_hook", "shocking_reveal", "emotional_peak", "curiosity_gap", "call_to_action"]
6. reason: Brief explanation of why this moment is engaging

IMPORTANT RULES:
- Each clip should be %.0f-%.0f seconds long
- Focus on moments that would make someone STOP scrolling
- Look for: surprising numbers, emotional moments, questions, reveals, dramatic statements
- The hook should work as a standalone short video
- Prefer moments from the first half of the video for opening hooks

Respond ONLY with valid JSON in this exact format:
{"hooks": [{"start_time": 0.0, "end_time": 30.0, "hook_text": "The exact quote", "virality_score": 9, "hook_type": "opening_hook", "reason": "Why this is engaging"}]}`,
		req.MaxCandidates, tb.String(), req.MinClip.Seconds(), req.MaxClip.Seconds())
}
