package models

import "fmt"

// BlockKind tags a ContentBlock variant.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockQuote
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockQuote:
		return "quote"
	default:
		return "paragraph"
	}
}

func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BlockKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "heading":
		*k = BlockHeading
	case "quote":
		*k = BlockQuote
	case "paragraph":
		*k = BlockParagraph
	default:
		return fmt.Errorf("unknown block kind %q", text)
	}
	return nil
}

// ContentBlock is one classified unit of article body text.
// Level is set for headings only, IsFirst for paragraphs only.
type ContentBlock struct {
	Kind    BlockKind `json:"kind"`
	Level   int       `json:"level,omitempty"`
	Text    string    `json:"text"`
	IsFirst bool      `json:"isFirst,omitempty"`
}

func Heading(level int, text string) ContentBlock {
	return ContentBlock{Kind: BlockHeading, Level: level, Text: text}
}

func Quote(text string) ContentBlock {
	return ContentBlock{Kind: BlockQuote, Text: text}
}

func Paragraph(text string, isFirst bool) ContentBlock {
	return ContentBlock{Kind: BlockParagraph, Text: text, IsFirst: isFirst}
}
