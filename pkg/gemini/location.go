package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"chronicle/pkg/logging"
	"chronicle/pkg/models"
)

// LocationClient grounds a place name with Google Maps.
type LocationClient struct {
	requester Requester
	model     string
}

func NewLocationClient(requester Requester, model string) *LocationClient {
	return &LocationClient{requester: requester, model: model}
}

// GroundLocation never fails: any error is logged and reported as nil.
// A non-nil result with a nil MapURL means the call worked but no link came back.
func (c *LocationClient) GroundLocation(ctx context.Context, name string, pos *models.LatLng) *models.MapResult {
	resp, err := c.requester.Generate(ctx, Request{
		Model:    c.model,
		Contents: genai.Text(locationPrompt(name)),
		Config:   locationConfig(pos),
	})
	if err == nil {
		var result *models.MapResult
		if result, err = decodeLocation(resp); err == nil {
			return result
		}
	}

	logging.Log.WithFields(logrus.Fields{
		"location": name,
		"error":    err,
	}).Warn("map grounding failed")
	return nil
}

func locationPrompt(name string) string {
	return fmt.Sprintf("Find the exact geographic coordinates and a brief history for the site: %q.", name)
}

func locationConfig(pos *models.LatLng) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
	}
	if pos != nil {
		lat, lng := pos.Lat, pos.Lng
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: &lat, Longitude: &lng},
			},
		}
	}
	return cfg
}

func decodeLocation(resp *genai.GenerateContentResponse) (*models.MapResult, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return nil, err
	}

	result := &models.MapResult{Text: candidateText(candidate)}
	for _, chunk := range groundingChunks(candidate) {
		if chunk == nil || chunk.Maps == nil {
			continue
		}
		if uri := strings.TrimSpace(chunk.Maps.URI); uri != "" {
			result.MapURL = &uri
			break
		}
	}
	return result, nil
}
