package model

// EntityHit is one ranked candidate from the fulltext entity search.
type EntityHit struct {
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// Relation is one edge incident to an entity. Target may be empty when the
// peer node has no resolvable name; the store layer does not filter those,
// formatting callers do.
type Relation struct {
	Source     string `json:"source"`
	Relation   string `json:"relation"`
	Target     string `json:"target"`
	Provenance string `json:"provenance"`
}

// ChunkRef is a supporting passage in which an entity was extracted.
type ChunkRef struct {
	ChunkID string `json:"chunk_id"`
	Text    string `json:"text"`
	Source  string `json:"source"`
}

// ContextBundle aggregates the evidence retrieved for one candidate entity.
// Empty neighbors/chunks are valid: absence of evidence is not an error.
type ContextBundle struct {
	Entity    string     `json:"entity"`
	Neighbors []Relation `json:"neighbors"`
	Chunks    []ChunkRef `json:"chunks"`
}
