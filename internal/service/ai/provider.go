package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ashstar-ai/mainframe/internal/config"
)

// Provider wraps a single named generation backend. Implementations do not
// retry; cross-provider retries belong to the Orchestrator.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse marks a call that returned without any text.
var ErrEmptyResponse = errors.New("provider returned empty response")

// ProviderError carries the provider identifier along with the underlying
// cause. Network, auth, quota, unknown-model and empty-output failures are
// all reported through it uniformly.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// chatModelProvider adapts one eino chat model to the Provider interface.
type chatModelProvider struct {
	name      string
	chatModel model.ChatModel
}

// NewProvider wraps an already-constructed chat model.
func NewProvider(name string, chatModel model.ChatModel) Provider {
	return &chatModelProvider{name: name, chatModel: chatModel}
}

// NewProviders builds one provider per configured model name, preserving
// the configured preference order.
func NewProviders(ctx context.Context, cfg config.AIConfig) ([]Provider, error) {
	providers := make([]Provider, 0, len(cfg.Models))
	for _, name := range cfg.Models {
		chatModel, err := cfg.NewChatModel(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model %q: %w", name, err)
		}
		providers = append(providers, NewProvider(name, chatModel))
	}
	return providers, nil
}

func (p *chatModelProvider) Name() string {
	return p.name
}

// Generate runs one completion call. Any non-empty text is success; every
// failure mode comes back as a *ProviderError.
func (p *chatModelProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", &ProviderError{Provider: p.name, Err: ErrEmptyResponse}
	}
	return text, nil
}
