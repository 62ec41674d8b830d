package engine

// --- Caption output types (JSON responses) ---

// CaptionSegment is one timed unit of transcript text.
// Start and Duration are seconds. Duration is emitted as "dur".
type CaptionSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"dur"`
	Text     string  `json:"text"`
}

// ErrorReport is the failure counterpart of a segment list.
type ErrorReport struct {
	Error string `json:"error"`
}
