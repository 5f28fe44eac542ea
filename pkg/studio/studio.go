// Package studio is the view controller: it owns the application state and
// routes user actions to article mutations and to the AI tools.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"chronicle/pkg/logging"
	"chronicle/pkg/models"
	"chronicle/pkg/services"
)

var (
	ErrPanelBusy   = errors.New("panel is busy")
	ErrEmptyPrompt = errors.New("image prompt is empty")
	ErrEmptyQuery  = errors.New("location query is empty")
)

// ErrArticleReplaced means the article was swapped while a cover was generating.
var ErrArticleReplaced = errors.New("article was replaced during the request")

type Panel string

const (
	PanelInsight  Panel = "insight"
	PanelImage    Panel = "image"
	PanelLocation Panel = "location"
)

type InsightFetcher interface {
	FetchInsight(ctx context.Context, topic string) (models.Insight, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type LocationGrounder interface {
	GroundLocation(ctx context.Context, name string, pos *models.LatLng) *models.MapResult
}

// Busy holds one flag per tool panel.
type Busy struct {
	Insight  bool `json:"insight"`
	Image    bool `json:"image"`
	Location bool `json:"location"`
}

func (b *Busy) flag(p Panel) *bool {
	switch p {
	case PanelInsight:
		return &b.Insight
	case PanelImage:
		return &b.Image
	default:
		return &b.Location
	}
}

// State is the whole application state. Values handed out by Snapshot are
// copies and safe to keep.
type State struct {
	Mode      models.ViewMode   `json:"mode"`
	Article   models.Article    `json:"article"`
	Insight   *models.Insight   `json:"insight"`
	MapResult *models.MapResult `json:"mapResult"`
	Busy      Busy              `json:"busy"`
}

func (s State) clone() State {
	out := s
	out.Article = s.Article.Clone()
	if s.Insight != nil {
		in := *s.Insight
		in.Sources = append([]models.GroundingSource(nil), s.Insight.Sources...)
		out.Insight = &in
	}
	if s.MapResult != nil {
		mr := *s.MapResult
		out.MapResult = &mr
	}
	return out
}

// Details are the configure-view fields; nil fields are left alone.
type Details struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Author   *string `json:"author"`
	Date     *string `json:"date"`
}

type Studio struct {
	mu    sync.Mutex
	state State
	seed  models.Article
	cache blockCache

	// generation counts whole-article swaps (import, reset).
	generation uint64

	insights  InsightFetcher
	images    ImageGenerator
	locations LocationGrounder
}

func New(seed models.Article, insights InsightFetcher, images ImageGenerator, locations LocationGrounder) *Studio {
	return &Studio{
		state:     State{Mode: models.ModeRead, Article: seed.Clone()},
		seed:      seed.Clone(),
		insights:  insights,
		images:    images,
		locations: locations,
	}
}

func (s *Studio) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Studio) Article() models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Article.Clone()
}

func (s *Studio) SetMode(mode models.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = mode
}

func (s *Studio) UpdateContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Article.Content = content
	s.cache.invalidate()
}

func (s *Studio) UpdateDetails(d Details) models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &s.state.Article
	if d.Title != nil {
		a.Title = *d.Title
	}
	if d.Subtitle != nil {
		a.Subtitle = *d.Subtitle
	}
	if d.Author != nil {
		a.Author = *d.Author
	}
	if d.Date != nil {
		a.Date = *d.Date
	}
	return a.Clone()
}

func (s *Studio) SetFootnotes(notes []models.Footnote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Article.Footnotes = append([]models.Footnote{}, notes...)
}

// AddFootnote appends a note numbered one past the highest existing id.
func (s *Studio) AddFootnote(text string) models.Footnote {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for _, fn := range s.state.Article.Footnotes {
		if fn.ID >= next {
			next = fn.ID + 1
		}
	}
	note := models.Footnote{ID: next, Text: text}
	s.state.Article.Footnotes = append(s.state.Article.Footnotes, note)
	return note
}

// SetLocation replaces the article's site; nil clears it.
func (s *Studio) SetLocation(loc *models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.state.Article.Location = nil
		return
	}
	l := *loc
	s.state.Article.Location = &l
}

func (s *Studio) SetCover(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Article.CoverImage = ref
}

// ReplaceArticle swaps in a whole article, e.g. after an import.
func (s *Studio) ReplaceArticle(a models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Article = a.Clone()
	s.generation++
	s.cache.invalidate()
}

// Reset restores the seed article and clears tool results.
func (s *Studio) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Article = s.seed.Clone()
	s.generation++
	s.state.Insight = nil
	s.state.MapResult = nil
	s.cache.invalidate()
}

// Blocks renders the current content.
func (s *Studio) Blocks() []models.ContentBlock {
	s.mu.Lock()
	content := s.state.Article.Content
	s.mu.Unlock()
	return s.cache.get(content)
}

// acquire sets the panel's busy flag, or fails if it is already set.
func (s *Studio) acquire(p Panel) error {
	flag := s.state.Busy.flag(p)
	if *flag {
		return ErrPanelBusy
	}
	*flag = true
	return nil
}

func (s *Studio) release(p Panel) {
	*s.state.Busy.flag(p) = false
}

// FetchInsight fact-checks the topic of the current content. On failure the
// previous insight stays in place.
func (s *Studio) FetchInsight(ctx context.Context) (models.Insight, error) {
	s.mu.Lock()
	if err := s.acquire(PanelInsight); err != nil {
		s.mu.Unlock()
		return models.Insight{}, err
	}
	topic := services.DeriveTopic(s.state.Article.Content)
	s.mu.Unlock()

	insight, err := s.insights.FetchInsight(ctx, topic)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(PanelInsight)
	if err != nil {
		logging.Log.WithFields(logrus.Fields{"topic": topic, "error": err}).Error("insight request failed")
		return models.Insight{}, err
	}
	s.state.Insight = &insight
	return insight, nil
}

// GenerateImage makes a new cover from prompt. On failure the cover is
// unchanged. A cover for an article that was replaced or reset in the
// meantime is dropped with ErrArticleReplaced.
func (s *Studio) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	s.mu.Lock()
	if err := s.acquire(PanelImage); err != nil {
		s.mu.Unlock()
		return "", err
	}
	generation := s.generation
	s.mu.Unlock()

	ref, err := s.images.GenerateImage(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(PanelImage)
	if err != nil {
		logging.Log.WithFields(logrus.Fields{"error": err}).Error("image generation failed")
		return "", err
	}
	if s.generation != generation {
		logging.Log.Warn("article replaced while generating cover; dropping image")
		return "", ErrArticleReplaced
	}
	s.state.Article.CoverImage = ref
	return ref, nil
}

// GroundLocation looks up a site. A nil result with a nil error means the
// lookup failed; the previous map result is kept.
func (s *Studio) GroundLocation(ctx context.Context, name string, pos *models.LatLng) (*models.MapResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	if err := s.acquire(PanelLocation); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	result := s.locations.GroundLocation(ctx, name, pos)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(PanelLocation)
	if result == nil {
		return nil, nil
	}
	stored := *result
	s.state.MapResult = &stored
	out := stored
	return &out, nil
}
