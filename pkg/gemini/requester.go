// Package gemini talks to the Gemini API. Transport sits behind Requester;
// each client only builds a request and decodes the response.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"chronicle/pkg/logging"
)

// Request is one generateContent call.
type Request struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Requester issues a model request and returns the raw response.
type Requester interface {
	Generate(ctx context.Context, req Request) (*genai.GenerateContentResponse, error)
}

// GenAIRequester sends requests through the genai SDK.
type GenAIRequester struct {
	client  *genai.Client
	limiter *rate.Limiter
}

var _ Requester = (*GenAIRequester)(nil)

type RequesterOptions struct {
	APIKey  string
	BaseURL string
	RPS     float64 // 0 disables throttling
	Burst   int
}

// NewRequester builds the SDK-backed requester. Without an API key it
// returns a requester that fails every call, so the app still serves.
func NewRequester(ctx context.Context, opts RequesterOptions) (Requester, error) {
	if opts.APIKey == "" {
		logging.Log.Warn("GEMINI_API_KEY not set; AI tools are disabled")
		return disabledRequester{}, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	r := &GenAIRequester{client: client}
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return r, nil
}

func (r *GenAIRequester) Generate(ctx context.Context, req Request) (*genai.GenerateContentResponse, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Model: req.Model, Cause: err}
		}
	}

	logging.Log.WithFields(logrus.Fields{"model": req.Model}).Debug("calling gemini")
	resp, err := r.client.Models.GenerateContent(ctx, req.Model, req.Contents, req.Config)
	if err != nil {
		return nil, &TransportError{Model: req.Model, Cause: err}
	}
	return resp, nil
}

var errNoAPIKey = errors.New("gemini API key not configured")

type disabledRequester struct{}

func (disabledRequester) Generate(_ context.Context, req Request) (*genai.GenerateContentResponse, error) {
	return nil, &TransportError{Model: req.Model, Cause: errNoAPIKey}
}

// firstCandidate returns the first candidate or a MalformedResponseError.
func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil {
		return nil, &MalformedResponseError{Reason: "nil response"}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, &MalformedResponseError{Reason: "no candidates"}
	}
	return resp.Candidates[0], nil
}

// candidateText joins the non-thought text parts of a candidate.
func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

func groundingChunks(c *genai.Candidate) []*genai.GroundingChunk {
	if c == nil || c.GroundingMetadata == nil {
		return nil
	}
	return c.GroundingMetadata.GroundingChunks
}
