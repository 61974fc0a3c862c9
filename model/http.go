package model

type TrackSummary struct {
	Name        string `json:"name"`
	Program     uint8  `json:"program"`
	Channel     uint8  `json:"channel"`
	Type        string `json:"type"`
	NumMeasures int    `json:"num_measures"`
	Monophonic  bool   `json:"monophonic"`
}

type ConvertResponse struct {
	Name            string         `json:"name"`
	TicksPerBeat    int            `json:"ticks_per_beat"`
	DurationSeconds float64        `json:"duration_seconds"`
	Tracks          []TrackSummary `json:"tracks"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
