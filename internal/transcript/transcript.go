package transcript

import (
	"encoding/json"
	"fmt"
	"os"
)

// Word is a single transcribed token with its spoken interval in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the spoken duration of the word in seconds.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Transcript is the top-level JSON structure produced by the
// transcription step: full text plus per-word timestamps.
type Transcript struct {
	Text  string `json:"text,omitempty"`
	Words []Word `json:"words"`
}

// loads a word-timestamped transcript from a JSON file
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		// some tools emit a bare word array instead of the wrapped form
		var words []Word
		if arrErr := json.Unmarshal(data, &words); arrErr == nil {
			return &Transcript{Words: words}, nil
		}
		return nil, fmt.Errorf("failed to parse transcript JSON: %w", err)
	}

	return &t, nil
}
