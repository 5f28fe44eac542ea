package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"chronicle/pkg/models"
)

var Formats = []string{"yaml", "toml", "json"}

func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(string(content))
	// Check for YAML (---)
	if raw, body, ok := splitFrontMatter(str, "---"); ok {
		var fm map[string]interface{}
		if err := yaml.Unmarshal([]byte(raw), &fm); err == nil {
			return orEmpty(fm), body, "yaml", nil
		}
	}
	// Check for TOML (+++)
	if raw, body, ok := splitFrontMatter(str, "+++"); ok {
		var fm map[string]interface{}
		if err := toml.Unmarshal([]byte(raw), &fm); err == nil {
			return orEmpty(fm), body, "toml", nil
		}
	}
	// Check for JSON ({); the body travels in the "content" key
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal([]byte(str), &fm); err == nil {
			body, _ := fm["content"].(string)
			delete(fm, "content")
			return fm, body, "json", nil
		}
	}

	return nil, "", "", fmt.Errorf("unknown format")
}

// splitFrontMatter cuts at delimiter lines only; base64 cover images may
// contain "+++" mid-line.
func splitFrontMatter(str, delim string) (string, string, bool) {
	if !strings.HasPrefix(str, delim+"\n") {
		return "", "", false
	}
	rest := str[len(delim)+1:]
	if strings.HasPrefix(rest, delim+"\n") || rest == delim {
		return "", strings.TrimSpace(strings.TrimPrefix(rest, delim)), true
	}
	closing := "\n" + delim + "\n"
	if idx := strings.Index(rest, closing); idx >= 0 {
		return rest[:idx], strings.TrimSpace(rest[idx+len(closing):]), true
	}
	if strings.HasSuffix(rest, "\n"+delim) {
		return strings.TrimSuffix(rest, "\n"+delim), "", true
	}
	return "", "", false
}

func orEmpty(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return map[string]interface{}{}
	}
	return fm
}

func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "json":
		normalizedFM["content"] = body
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportArticle writes the article as markdown with front matter in format.
func ExportArticle(article models.Article, format string) ([]byte, error) {
	fm := map[string]interface{}{
		"id":       article.ID,
		"title":    article.Title,
		"subtitle": article.Subtitle,
		"author":   article.Author,
		"date":     article.Date,
	}
	if article.CoverImage != "" {
		fm["cover_image"] = article.CoverImage
	}
	if len(article.Footnotes) > 0 {
		notes := make([]interface{}, 0, len(article.Footnotes))
		for _, fn := range article.Footnotes {
			notes = append(notes, map[string]interface{}{"id": fn.ID, "text": fn.Text})
		}
		fm["footnotes"] = notes
	}
	if article.Location != nil {
		fm["location"] = map[string]interface{}{
			"lat":  article.Location.Lat,
			"lng":  article.Location.Lng,
			"name": article.Location.Name,
		}
	}
	return ConstructFileContent(fm, article.Content, format)
}

// frontMatterArticle mirrors the exported keys for decoding.
type frontMatterArticle struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Author     string            `json:"author"`
	Date       string            `json:"date"`
	CoverImage string            `json:"cover_image"`
	Footnotes  []models.Footnote `json:"footnotes"`
	Location   *models.Location  `json:"location"`
}

// ImportArticle parses a front-matter document into an Article. A missing id
// gets a fresh one.
func ImportArticle(content []byte) (models.Article, error) {
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.Article{}, err
	}

	raw, err := json.Marshal(canonicalizeFrontMatterForJSON(sanitizeFrontMatter(fm)))
	if err != nil {
		return models.Article{}, err
	}
	var decoded frontMatterArticle
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return models.Article{}, fmt.Errorf("decode front matter: %w", err)
	}

	article := models.Article{
		ID:         decoded.ID,
		Title:      decoded.Title,
		Subtitle:   decoded.Subtitle,
		Author:     decoded.Author,
		Date:       decoded.Date,
		Content:    body,
		CoverImage: decoded.CoverImage,
		Footnotes:  decoded.Footnotes,
		Location:   decoded.Location,
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Footnotes == nil {
		article.Footnotes = []models.Footnote{}
	}
	return article, nil
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

func canonicalizeFrontMatterForJSON(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	canonical := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		canonical[k] = canonicalizeValueForJSON(v)
	}
	return canonical
}

func canonicalizeValueForJSON(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return canonicalizeFrontMatterForJSON(v)
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = canonicalizeValueForJSON(v[i])
		}
		return slice
	case time.Time:
		// unquoted YAML/TOML dates land here; the era label is free text
		return v.Format("2006-01-02")
	case toml.LocalDate:
		return v.String()
	default:
		return v
	}
}
