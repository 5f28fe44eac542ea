package services

import (
	"regexp"
	"strings"

	"chronicle/pkg/models"
)

const DefaultTopic = "Historical Context"

// blockRule classifies a candidate by prefix. Rules are tried in order and
// the first match wins, so "### " is never seen by the "## " rule.
type blockRule struct {
	prefix string
	build  func(text string) models.ContentBlock
}

var blockRules = []blockRule{
	{prefix: "### ", build: func(text string) models.ContentBlock { return models.Heading(3, text) }},
	{prefix: "## ", build: func(text string) models.ContentBlock { return models.Heading(2, text) }},
	{prefix: "> ", build: models.Quote},
}

var topicPattern = regexp.MustCompile(`## (.*?)\n`)

// RenderContent splits body text on blank lines and classifies each piece.
func RenderContent(text string) []models.ContentBlock {
	candidates := strings.Split(normalizeLineEndings(text), "\n\n")
	blocks := make([]models.ContentBlock, 0, len(candidates))
	seenParagraph := false

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if block, ok := matchRule(candidate); ok {
			blocks = append(blocks, block)
			continue
		}
		blocks = append(blocks, models.Paragraph(candidate, !seenParagraph))
		seenParagraph = true
	}
	return blocks
}

func matchRule(candidate string) (models.ContentBlock, bool) {
	for _, rule := range blockRules {
		if strings.HasPrefix(candidate, rule.prefix) {
			return rule.build(strings.TrimPrefix(candidate, rule.prefix)), true
		}
	}
	return models.ContentBlock{}, false
}

// DeriveTopic picks the fact-check topic: the first "## " heading that ends
// in a newline, or DefaultTopic.
func DeriveTopic(content string) string {
	if m := topicPattern.FindStringSubmatch(normalizeLineEndings(content)); m != nil {
		return m[1]
	}
	return DefaultTopic
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
