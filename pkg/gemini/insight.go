package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"chronicle/pkg/models"
)

const (
	defaultSummary     = "No summary available."
	defaultSourceTitle = "Source"
)

// InsightClient asks for web-grounded historical context on a topic.
type InsightClient struct {
	requester Requester
	model     string
}

func NewInsightClient(requester Requester, model string) *InsightClient {
	return &InsightClient{requester: requester, model: model}
}

// FetchInsight returns a complete Insight or a *ServiceError.
func (c *InsightClient) FetchInsight(ctx context.Context, topic string) (models.Insight, error) {
	resp, err := c.requester.Generate(ctx, Request{
		Model:    c.model,
		Contents: genai.Text(insightPrompt(topic)),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	})
	if err != nil {
		return models.Insight{}, &ServiceError{Op: "fetch insight", Cause: err}
	}

	insight, err := decodeInsight(resp)
	if err != nil {
		return models.Insight{}, &ServiceError{Op: "fetch insight", Cause: err}
	}
	return insight, nil
}

func insightPrompt(topic string) string {
	return fmt.Sprintf("Provide a detailed historical context and fact-check for the following topic: %q. Focus on primary sources and verified timelines.", topic)
}

func decodeInsight(resp *genai.GenerateContentResponse) (models.Insight, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return models.Insight{}, err
	}

	summary := candidateText(candidate)
	if summary == "" {
		summary = defaultSummary
	}
	return models.Insight{
		Summary: summary,
		Sources: webSources(groundingChunks(candidate)),
	}, nil
}

// webSources keeps chunks with a URI, first occurrence of each URI wins.
func webSources(chunks []*genai.GroundingChunk) []models.GroundingSource {
	sources := make([]models.GroundingSource, 0, len(chunks))
	seen := make(map[string]bool, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		uri := strings.TrimSpace(chunk.Web.URI)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true

		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = defaultSourceTitle
		}
		sources = append(sources, models.GroundingSource{Title: title, URI: uri})
	}
	return sources
}
