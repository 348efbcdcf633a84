package entity

import "time"

const (
	KindGenerated = "generated"
	KindAd        = "ad"
)

// AdLayout carries the per-request text and color parameters of an ad.
type AdLayout struct {
	Punchline  string `json:"punchline"`
	ButtonText string `json:"button_text"`
	ColorHex   string `json:"color_hex"`
}

type GenerateImageRequest struct {
	Prompt    string
	BaseImage []byte
}

type CreateAdRequest struct {
	Prompt    string
	BaseImage []byte
	Logo      []byte
	Layout    AdLayout
}

type RenderResult struct {
	ID     string
	Kind   string
	PNG    []byte
	Width  int
	Height int
}

// RenderRecord is the archived metadata of a finished render.
type RenderRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

type RenderEvent struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Prompt     string    `json:"prompt"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
