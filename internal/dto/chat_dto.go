package dto

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
	Mode    string `json:"mode" validate:"required"`
	Model   string `json:"model,omitempty"` // explicit override, allow-list checked
}

type SendChatResponse struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
	Model string `json:"model"`

	// Fallback provenance, present only when the alternate produced the
	// reply.
	FallbackUsed  bool   `json:"fallback_used,omitempty"`
	OriginalModel string `json:"original_model,omitempty"`
	FallbackModel string `json:"fallback_model,omitempty"`

	SearchUsed bool `json:"search_used,omitempty"`
}

type ChatTurnResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Mode      string `json:"mode"`
	Timestamp int64  `json:"timestamp"`
}

type ChatHistoryResponse struct {
	SessionId string             `json:"session_id"`
	Turns     []ChatTurnResponse `json:"turns"`
}
