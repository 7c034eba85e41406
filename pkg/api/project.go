package api

type (
	// RotationStyle controls how a sprite's direction affects its costume
	RotationStyle string

	// Project is a loaded program: the stage followed by its sprites
	Project struct {
		Meta    Metadata  `json:"meta"`
		Targets []*Target `json:"targets"`
	}

	// Metadata describes the tool that produced a project
	Metadata struct {
		Semver string `json:"semver"`
		VM     string `json:"vm"`
		Agent  string `json:"agent"`
	}

	// Target is the definition of the stage or of one original sprite
	Target struct {
		Blocks         Blocks               `json:"-"`
		Variables      map[string]*Variable `json:"variables"`
		Lists          map[string]*List     `json:"lists"`
		Broadcasts     map[string]string    `json:"broadcasts"`
		Name           string               `json:"name"`
		RotationStyle  RotationStyle        `json:"rotationStyle"`
		Scripts        []BlockID            `json:"-"`
		Costumes       []*Costume           `json:"costumes"`
		Sounds         []*Sound             `json:"sounds"`
		X              float64              `json:"x"`
		Y              float64              `json:"y"`
		Direction      float64              `json:"direction"`
		Size           float64              `json:"size"`
		Volume         float64              `json:"volume"`
		LayerOrder     int                  `json:"layerOrder"`
		CurrentCostume int                  `json:"currentCostume"`
		IsStage        bool                 `json:"isStage"`
		Visible        bool                 `json:"visible"`
		Draggable      bool                 `json:"draggable"`
	}

	// Costume is one appearance of a target
	Costume struct {
		ID               string  `json:"assetId"`
		Name             string  `json:"name"`
		FullName         string  `json:"md5ext"`
		DataFormat       string  `json:"dataFormat"`
		Width            float64 `json:"width"`
		Height           float64 `json:"height"`
		RotationCenterX  float64 `json:"rotationCenterX"`
		RotationCenterY  float64 `json:"rotationCenterY"`
		BitmapResolution float64 `json:"bitmapResolution"`
	}

	// Sound is one audio asset of a target
	Sound struct {
		ID          string `json:"assetId"`
		Name        string `json:"name"`
		FullName    string `json:"md5ext"`
		DataFormat  string `json:"dataFormat"`
		Rate        int    `json:"rate"`
		SampleCount int    `json:"sampleCount"`
	}

	// Variable is a named scalar declared by a target
	Variable struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Value Value  `json:"-"`
		Cloud bool   `json:"isCloud"`
	}

	// List is a named sequence of Values declared by a target
	List struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Items []Value `json:"-"`
	}
)

const (
	RotationAllAround RotationStyle = "all around"
	RotationLeftRight RotationStyle = "left-right"
	RotationNone      RotationStyle = "don't rotate"
)

// CloudPrefix marks variables that are mirrored to the cloud store
const CloudPrefix = "☁ "

// Stage returns the stage target of the project, or nil
func (p *Project) Stage() *Target {
	for _, t := range p.Targets {
		if t.IsStage {
			return t
		}
	}
	return nil
}

// Target returns the sprite or stage target with the given name, or nil
func (p *Project) Target(name string) *Target {
	for _, t := range p.Targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// IsValid reports whether the style is one of the known rotation styles
func (r RotationStyle) IsValid() bool {
	switch r {
	case RotationAllAround, RotationLeftRight, RotationNone:
		return true
	default:
		return false
	}
}
