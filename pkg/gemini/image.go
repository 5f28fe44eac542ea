package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"chronicle/pkg/services"
)

const imageAspectRatio = "16:9"

// ImageClient generates cover illustrations.
type ImageClient struct {
	requester Requester
	model     string
}

func NewImageClient(requester Requester, model string) *ImageClient {
	return &ImageClient{requester: requester, model: model}
}

// GenerateImage returns a data: reference for the first inline image in the
// response. Callers reject blank prompts before calling.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.requester.Generate(ctx, Request{
		Model: c.model,
		Contents: []*genai.Content{
			genai.NewContentFromText(imagePrompt(prompt), genai.RoleUser),
		},
		Config: &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: imageAspectRatio},
		},
	})
	if err != nil {
		return "", err
	}
	return decodeImage(resp)
}

func imagePrompt(prompt string) string {
	return fmt.Sprintf("A cinematic, high-detail historical recreation in the style of a classic oil painting or a vintage daguerreotype: %s. Muted colors, authentic textures.", prompt)
}

func decodeImage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", &MalformedResponseError{Reason: "nil response"}
	}
	inspected := 0
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			inspected++
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return services.EncodeImageReference(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", &NoImageDataError{Parts: inspected}
}
