package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrors is the data payload of a 400 response.
type ValidationErrors struct {
	Errors []string `json:"errors"`
}
