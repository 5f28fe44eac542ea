package studio

import (
	"sync"

	"chronicle/pkg/models"
	"chronicle/pkg/services"
)

// blockCache memoises the rendered blocks of the current content. Rendering is
// pure, so the cache only has to be dropped when the content changes.
type blockCache struct {
	mu     sync.Mutex
	blocks []models.ContentBlock
	source string
	loaded bool
}

func (c *blockCache) get(content string) []models.ContentBlock {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.source == content {
		return append([]models.ContentBlock(nil), c.blocks...)
	}

	c.blocks = services.RenderContent(content)
	c.source = content
	c.loaded = true
	return append([]models.ContentBlock(nil), c.blocks...)
}

func (c *blockCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.blocks = nil
	c.source = ""
}
