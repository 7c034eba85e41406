package api

type (
	// Frame is the render snapshot handed to presentation backends once
	// per tick. Sprites are ordered back to front
	Frame struct {
		Sprites []*SpriteState `json:"sprites"`
		Number  uint64         `json:"frame"`
		Width   float64        `json:"width"`
		Height  float64        `json:"height"`
	}

	// SpriteState is the visible state of one sprite instance
	SpriteState struct {
		Effects       map[string]float64 `json:"effects,omitempty"`
		Variables     map[string]any     `json:"variables,omitempty"`
		Name          string             `json:"name"`
		Costume       string             `json:"costume"`
		Bubble        string             `json:"bubble,omitempty"`
		BubbleKind    BubbleKind         `json:"bubble_kind,omitempty"`
		RotationStyle RotationStyle      `json:"rotation_style"`
		X             float64            `json:"x"`
		Y             float64            `json:"y"`
		Direction     float64            `json:"direction"`
		Size          float64            `json:"size"`
		Width         float64            `json:"width"`
		Height        float64            `json:"height"`
		CostumeIndex  int                `json:"costume_index"`
		Layer         int                `json:"layer"`
		Visible       bool               `json:"visible"`
		Clone         bool               `json:"clone"`
		Stage         bool               `json:"stage"`
	}

	// BubbleKind distinguishes speech from thought bubbles
	BubbleKind string
)

const (
	BubbleSay   BubbleKind = "say"
	BubbleThink BubbleKind = "think"
)

// EngineStatus summarizes a running engine for status reporting
type EngineStatus struct {
	Frame   uint64  `json:"frame"`
	Sprites int     `json:"sprites"`
	Clones  int     `json:"clones"`
	Waiting int     `json:"waiting"`
	Pending int     `json:"pending"`
	Timer   float64 `json:"timer"`
	Stopped bool    `json:"stopped"`
}
