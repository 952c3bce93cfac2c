package fireflies

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Speaker identifies a meeting participant.
type Speaker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Sentence is a single utterance in a transcript. Only present in the
// full-detail retrieval.
type Sentence struct {
	Index int `json:"index"`

	// Speaker is the display name of the participant who spoke.
	Speaker string `json:"speaker_name"`

	Text string `json:"text"`

	// StartTime and EndTime are offsets into the meeting, in seconds.
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Summary is the backend-generated digest of a transcript. All fields are
// optional; absence of the whole record (nil *Summary) is distinct from an
// empty record.
//
// The backend is inconsistent about the list-shaped fields and may deliver
// either a single string or a list of strings. StringOrList normalizes that
// at the decoding boundary so the rest of the code only ever sees a slice.
type Summary struct {
	Overview        string       `json:"overview,omitempty"`
	ActionItems     StringOrList `json:"action_items,omitempty"`
	Keywords        StringOrList `json:"keywords,omitempty"`
	TopicsDiscussed StringOrList `json:"topics_discussed,omitempty"`
}

// Transcript is a single recorded meeting. Identity is defined by ID; all
// other fields are mutable upstream and never cached locally.
type Transcript struct {
	ID    string    `json:"id"`
	Title string    `json:"title,omitempty"`
	Date  Timestamp `json:"date,omitempty"`

	// Duration is the meeting length in seconds.
	Duration float64 `json:"duration,omitempty"`

	TranscriptURL string    `json:"transcript_url,omitempty"`
	Speakers      []Speaker `json:"speakers,omitempty"`

	// Sentences is only populated by the full-detail retrieval.
	Sentences []Sentence `json:"sentences,omitempty"`

	Summary *Summary `json:"summary,omitempty"`
}

// StringOrList accepts a JSON string, a JSON list of strings, or null, and
// normalizes all three to a slice. A bare string decodes as a one-element
// slice.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*s = nil
			return nil
		}
		*s = StringOrList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringOrList(many)
	return nil
}

// Timestamp decodes the backend's two observed date representations: an
// epoch-millisecond number (possibly quoted) and an ISO-8601 string.
// It marshals back as RFC 3339.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	raw = strings.Trim(raw, `"`)
	if millis, err := strconv.ParseFloat(raw, 64); err == nil {
		t.Time = time.UnixMilli(int64(millis)).UTC()
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return &time.ParseError{Layout: time.RFC3339, Value: raw, Message: ": unsupported timestamp format"}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
