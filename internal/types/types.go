package types

type Word struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence,omitempty"`
}

// RawCandidate is one unvalidated hook suggestion from the scorer. Times are
// seconds from the start of the source media; Score is normalized to [0,1].
type RawCandidate struct {
	StartSec float64
	EndSec   float64
	Quote    string
	Kind     string
	Reason   string
	Score    float64
}

type Manifest struct {
	RunID       string         `json:"run_id"`
	Input       string         `json:"input"`
	Source      string         `json:"source,omitempty"`
	DurationSec float64        `json:"duration_sec"`
	Words       int            `json:"words"`
	Animation   string         `json:"animation"`
	CaptionMode string         `json:"caption_mode"`
	Clips       []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	ID          string  `json:"id"`
	File        string  `json:"file"`
	Subtitles   string  `json:"subtitles"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	DurationSec float64 `json:"duration_sec"`
	Score       float64 `json:"score"`
	Kind        string  `json:"kind,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	Text        string  `json:"text"`
}
