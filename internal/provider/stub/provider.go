// Package stub provides a chat provider that answers without external API
// calls, so the dashboard stays usable when no OpenAI key is configured.
// Responses are deterministic, which also makes it useful in tests.
package stub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diversicloud/cloudcompare/internal/domain"
)

const providerName = "stub"

// Provider implements domain.ChatProvider with canned advisory text.
type Provider struct {
	name string
}

// NewProvider creates a new stub chat provider.
func NewProvider() *Provider {
	return &Provider{name: providerName}
}

// Complete echoes a short canned recommendation referencing the prompt.
func (p *Provider) Complete(_ context.Context, req *domain.ChatRequest) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	summary := req.Prompt
	const maxSummaryLen = 80
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen] + "..."
	}
	summary = strings.ReplaceAll(summary, "\n", " ")

	return fmt.Sprintf(
		"Chat is running without an API key, so this is a canned answer to %q. "+
			"Compare the per-unit rates shown in the dashboard: on-demand AWS "+
			"prices are live, while Azure and GCP figures are static estimates. "+
			"For a real recommendation, configure OPENAI_API_KEY.",
		summary,
	), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}
