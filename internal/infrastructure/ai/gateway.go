// Package ai adapts the Gemini API to ports.Gateway.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const (
	defaultTimeout = 60 * time.Second

	conciergePersona = "You are Aura, the AI Concierge for The Plaza OS. You are polite, efficient, and sophisticated. " +
		"You assist residents with gym schedules, guest passes, and general building queries. " +
		"Keep responses concise and elegant."

	diagnosePrompt = "Analyze this image for building maintenance issues. " +
		"Identify the issue (e.g., Water Leak, Crack, Electrical Hazard). " +
		"Assess severity (Low, Medium, Critical). " +
		"Recommend an immediate action. " +
		`Format the output strictly as JSON: {"issue": "...", "severity": "...", "action": "..."}`

	editPrompt = "Edit this image based on the following instruction: %s. Return a description of the edited image first."

	polishPrompt = "You are a diplomatic communications expert for a luxury hotel. " +
		"Rewrite the following rough note into a polished, professional, and reassuring announcement for residents. " +
		"Keep it warm but formal.\n\nRough Note: \"%s\""

	draftPrompt = "Write a sophisticated, short marketplace listing description for a resident bulletin board in a luxury building.\n" +
		"Item: %s\nDetails: %s\n\nTone: Exclusive, minimalist, and appealing. Max 50 words."
)

// Generator is the slice of the genai client the gateway depends on.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory builds a Generator for an API key.
type ClientFactory func(ctx context.Context, apiKey string) (Generator, error)

// NewGeminiClient is the ClientFactory for the Gemini Developer API.
func NewGeminiClient(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Models selects the model used by each capability.
type Models struct {
	Concierge string
	Vision    string
	Writer    string
	Draft     string
}

type Config struct {
	Models         Models
	Timeout        time.Duration
	ThinkingBudget int32
}

// Gateway implements ports.Gateway. The API key is resolved on every call;
// a client is built lazily and rebuilt when the key changes.
type Gateway struct {
	cfg     Config
	creds   ports.CredentialSource
	factory ClientFactory
	log     zerolog.Logger

	mu     sync.Mutex
	apiKey string
	client Generator
}

func NewGateway(cfg Config, creds ports.CredentialSource, factory ClientFactory, log zerolog.Logger) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if factory == nil {
		factory = NewGeminiClient
	}
	return &Gateway{
		cfg:     cfg,
		creds:   creds,
		factory: factory,
		log:     log,
	}
}

func (g *Gateway) Concierge(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Text, roleOf(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(conciergePersona, genai.RoleUser),
	}
	if g.cfg.ThinkingBudget > 0 {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.cfg.ThinkingBudget)}
	}
	return g.generate(ctx, domain.CapabilityConcierge, g.cfg.Models.Concierge, contents, config)
}

func (g *Gateway) DiagnoseImage(ctx context.Context, img domain.Image) (string, error) {
	contents := []*genai.Content{imageContent(img, diagnosePrompt)}
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	return g.generate(ctx, domain.CapabilityDiagnose, g.cfg.Models.Vision, contents, config)
}

func (g *Gateway) EditImageDescription(ctx context.Context, img domain.Image, instruction string) (string, error) {
	contents := []*genai.Content{imageContent(img, fmt.Sprintf(editPrompt, instruction))}
	return g.generate(ctx, domain.CapabilityEdit, g.cfg.Models.Vision, contents, nil)
}

func (g *Gateway) PolishText(ctx context.Context, rough string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(fmt.Sprintf(polishPrompt, rough), genai.RoleUser)}
	return g.generate(ctx, domain.CapabilityPolish, g.cfg.Models.Writer, contents, nil)
}

func (g *Gateway) DraftListing(ctx context.Context, item, details string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(fmt.Sprintf(draftPrompt, item, details), genai.RoleUser)}
	return g.generate(ctx, domain.CapabilityDraft, g.cfg.Models.Draft, contents, nil)
}

func (g *Gateway) generate(ctx context.Context, capability domain.Capability, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	log := g.log.With().Str("capability", string(capability)).Str("model", model).Logger()

	client, err := g.generator(ctx)
	if err != nil {
		metrics.AICallsTotal.WithLabelValues(string(capability), "configuration").Inc()
		log.Error().Err(err).Msg("AI gateway not configured")
		return "", fmt.Errorf("%s: %w", capability, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.GenerateContent(callCtx, model, contents, config)
	metrics.AICallDuration.WithLabelValues(string(capability)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AICallsTotal.WithLabelValues(string(capability), "transport").Inc()
		return "", fmt.Errorf("%s: %w: %w", capability, domain.ErrTransport, err)
	}
	metrics.AICallsTotal.WithLabelValues(string(capability), "ok").Inc()
	log.Debug().Dur("elapsed", time.Since(start)).Msg("AI call completed")

	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// generator returns a client for the current API key. Every failure wraps
// domain.ErrConfiguration.
func (g *Gateway) generator(ctx context.Context) (Generator, error) {
	key, err := g.creds.APIKey(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil && g.apiKey == key {
		return g.client, nil
	}
	client, err := g.factory(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %w", domain.ErrConfiguration, err)
	}
	g.apiKey, g.client = key, client
	return client, nil
}

func imageContent(img domain.Image, prompt string) *genai.Content {
	return genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(img.Data, img.MIMEType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)
}

func roleOf(author domain.ChatAuthor) genai.Role {
	if author == domain.AuthorModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
