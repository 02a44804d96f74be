// Package ai writes the judge's closing remarks for finished trials.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// MaxTokens bounds the length of the remarks.
	MaxTokens         = 120
	completionTimeout = 10 * time.Second
)

const systemPrompt = `You are the presiding judge of Sperm Court, a comedic courtroom where sperm cells stand trial ` +
	`for their swimming performance. Close the session in two short sentences. Stay playful and family friendly, ` +
	`mention the health grade and never give medical advice.`

// Commentator produces closing remarks for a finished trial. Without an OpenAI client it falls back to scripted
// remarks.
type Commentator struct {
	client *openai.Client
	logger *slog.Logger
}

// NewCommentator creates a commentator using the OpenAI API. An empty apiKey disables the API.
func NewCommentator(apiKey string, logger *slog.Logger) *Commentator {
	if apiKey == "" {
		return &Commentator{client: nil, logger: logger}
	}
	return NewCommentatorWithConfig(openai.DefaultConfig(apiKey), logger)
}

// NewCommentatorWithConfig creates a commentator with a custom client configuration such as another base URL.
func NewCommentatorWithConfig(config openai.ClientConfig, logger *slog.Logger) *Commentator {
	return &Commentator{
		client: openai.NewClientWithConfig(config),
		logger: logger,
	}
}

// ClosingRemarks returns the judge's closing remarks for summary. It never fails; API errors are logged and the
// scripted remarks are returned instead.
func (c *Commentator) ClosingRemarks(ctx context.Context, summary court.Summary) string {
	if c.client == nil {
		return ScriptedRemarks(summary)
	}
	remarks, err := c.complete(ctx, summary)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "falling back to scripted remarks", errors.SlogError(err))
		return ScriptedRemarks(summary)
	}
	return remarks
}

func (c *Commentator) complete(ctx context.Context, summary court.Summary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo,
			MaxTokens: MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: describe(summary)},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion has no choices", slog.String("id", completion.ID))
	}
	remarks := strings.TrimSpace(completion.Choices[0].Message.Content)
	if remarks == "" {
		return "", errors.New("completion is empty", slog.String("id", completion.ID))
	}
	return remarks, nil
}

func describe(summary court.Summary) string {
	return fmt.Sprintf(
		"Verdicts: %d guilty, %d innocent (record %s). Health grade: %s. Sentence: %s Score: %d. Objections: %d.",
		summary.Guilty, summary.Innocent, summary.Record, summary.Grade.Name, summary.Sentence,
		summary.Score, summary.Objections,
	)
}

// ScriptedRemarks are the closing remarks used when the API is unavailable.
func ScriptedRemarks(summary court.Summary) string {
	var opening string
	switch {
	case summary.Guilty == 0:
		opening = "Not a single conviction. This court has gone soft!"
	case summary.Innocent == 0:
		opening = "Every last swimmer convicted. Order in the court!"
	case summary.Objections >= court.ObjectionMasterThreshold:
		opening = "So many objections, the gavel needs a vacation."
	default:
		opening = "The court has heard enough."
	}
	return fmt.Sprintf("%s Health grade %s: %s", opening, summary.Grade.Name, summary.Sentence)
}
