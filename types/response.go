package types

// ApiResponse is the envelope every handler returns. Token is only set by the
// auth endpoints; Data carries the operation-specific payload.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
