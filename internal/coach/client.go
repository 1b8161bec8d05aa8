// Package coach is a thin pass-through to a chat-completion service. It
// builds a templated system prompt from the habit's computed statistics
// and streams the model's reply; there is no algorithmic content here.
package coach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/keiki-saito/habit100-app/internal/keyring"
	"github.com/keiki-saito/habit100-app/internal/logger"
)

const defaultModel = "gpt-4o-mini"

// Message is one turn of the coaching conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a coaching client. The API key is resolved from the
// COACH_API_KEY environment variable, falling back to the OS keyring.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("COACH_API_KEY")
	if apiKey == "" {
		key, err := keyring.GetCoachAPIKey()
		if err != nil {
			return nil, fmt.Errorf("no coaching API key: set COACH_API_KEY or run 'habit100 config set-api-key'")
		}
		apiKey = key
	}

	model := os.Getenv("COACH_MODEL")
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("COACH_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	return &Client{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Stream sends the conversation with the given system prompt and invokes
// fn for every text delta until the stream ends.
func (c *Client) Stream(ctx context.Context, systemMessage string, messages []Message, fn func(delta string) error) error {
	req := openai.ChatCompletionRequest{
		Model:  c.model,
		Stream: true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		logger.Error("Coaching API call failed", "error", err)
		return fmt.Errorf("coaching API call failed: %w", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			logger.Error("Coaching stream failed", "error", err)
			return fmt.Errorf("coaching stream failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}
}
