package response

// Envelope is the wire shape of every API response. Errors carries the
// error-kind specific payload: the unavailable seat labels on a
// conflict, binding details on a validation failure, nil otherwise.
type Envelope struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}
