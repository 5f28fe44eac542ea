package models

// GroundingSource is a web citation attached to an Insight.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Insight is the historical brief returned by the fact-check tool.
type Insight struct {
	Summary string            `json:"summary"`
	Sources []GroundingSource `json:"sources"`
}

// MapResult is the location tool's answer. MapURL is nil when the
// service answered without a map link.
type MapResult struct {
	Text   string  `json:"text"`
	MapURL *string `json:"mapUrl"`
}
