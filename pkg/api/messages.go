package api

type (
	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Version string `json:"version"`
		Status  string `json:"status"`
		Frame   uint64 `json:"frame"`
	}

	// SpritesResponse lists the visible state of every sprite instance
	SpritesResponse struct {
		Sprites []*SpriteState `json:"sprites"`
		Count   int            `json:"count"`
	}

	// InputRequest updates the pointer and keyboard state. Omitted fields
	// leave the current state unchanged
	InputRequest struct {
		MouseX    *float64 `json:"mouse_x,omitempty"`
		MouseY    *float64 `json:"mouse_y,omitempty"`
		MouseDown *bool    `json:"mouse_down,omitempty"`
		Press     []string `json:"press,omitempty"`
		Release   []string `json:"release,omitempty"`
	}

	// AnswerRequest answers the question currently being asked
	AnswerRequest struct {
		Text string `json:"text"`
	}

	// SubscribeRequest is sent by event stream clients to choose which
	// notifications they receive
	SubscribeRequest struct {
		Type string             `json:"type"`
		Data ClientSubscription `json:"data"`
	}

	// ClientSubscription filters notifications by type and sprite
	ClientSubscription struct {
		EventTypes []EventType `json:"event_types,omitempty"`
		Sprites    []string    `json:"sprites,omitempty"`
	}

	// SubscribedResult acknowledges a subscription, carrying the engine
	// status at the moment it took effect
	SubscribedResult struct {
		Status *EngineStatus      `json:"status,omitempty"`
		Type   string             `json:"type"`
		Data   ClientSubscription `json:"data"`
	}

	// MessageResponse contains a simple message string
	MessageResponse struct {
		Message string `json:"message"`
	}

	// ErrorResponse contains error details for failed requests
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}
)

const (
	HealthHealthy = "healthy"
	HealthStopped = "stopped"
)
