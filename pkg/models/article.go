package models

// Article is the document being written and read.
type Article struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Author     string     `json:"author"`
	Date       string     `json:"date"` // free-text era label
	Content    string     `json:"content"`
	CoverImage string     `json:"coverImage,omitempty"`
	Footnotes  []Footnote `json:"footnotes"`
	Location   *Location  `json:"location,omitempty"`
}

// Footnote ids are display numbers only; callers keep them unique.
type Footnote struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// LatLng is a bare coordinate, used as the caller's position bias.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Clone returns a copy that shares no slices or pointers with a.
func (a Article) Clone() Article {
	out := a
	if a.Footnotes != nil {
		out.Footnotes = append([]Footnote(nil), a.Footnotes...)
	}
	if a.Location != nil {
		loc := *a.Location
		out.Location = &loc
	}
	return out
}
