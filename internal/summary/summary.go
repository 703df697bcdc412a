// Package summary generates a short natural-language summary of a parsed
// session transcript. The pipeline treats summarization as best-effort: a
// failure here leaves the session in the parsed state for a later retry, it
// never marks the session failed.
package summary

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/devtrail/devtrail/internal/config"
)

// Excerpt is one transcript message trimmed down for the prompt.
type Excerpt struct {
	Role string
	Text string
}

// Request carries the transcript excerpts for one session.
type Request struct {
	SessionID string
	GitBranch string
	Excerpts  []Excerpt
}

// Result is the generated summary plus token accounting for the call itself.
type Result struct {
	Summary      string
	InputTokens  int64
	OutputTokens int64
}

// Generator produces a session summary.
type Generator interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}

// Per-message and total prompt caps keep the request bounded regardless of
// transcript size.
const (
	maxExcerptChars = 2000
	maxPromptChars  = 100_000
)

// AnthropicGenerator implements Generator on the Anthropic Messages API.
type AnthropicGenerator struct {
	client      sdk.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewAnthropicGenerator(cfg config.SummaryConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:      sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxOutputTokens),
	}
}

func (g *AnthropicGenerator) Summarize(ctx context.Context, req Request) (Result, error) {
	prompt := buildPrompt(req)

	params := sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if g.temperature > 0 {
		params.Temperature = sdk.Float(g.temperature)
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("anthropic messages.new: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Text != "" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Result{}, fmt.Errorf("empty summary response for session %s", req.SessionID)
	}

	return Result{
		Summary:      text,
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	}, nil
}

func buildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("Summarize this coding session transcript in 2-4 sentences. ")
	sb.WriteString("Focus on what was built or changed and any notable problems hit. ")
	sb.WriteString("Respond with the summary only.\n")
	if req.GitBranch != "" {
		sb.WriteString("Branch: " + req.GitBranch + "\n")
	}
	sb.WriteString("\n")

	for _, ex := range req.Excerpts {
		text := ex.Text
		if len(text) > maxExcerptChars {
			text = text[:maxExcerptChars] + "…"
		}
		line := fmt.Sprintf("[%s] %s\n", ex.Role, text)
		if sb.Len()+len(line) > maxPromptChars {
			break
		}
		sb.WriteString(line)
	}
	return sb.String()
}
