package httputils

// RequestError is the uniform error body returned by the admin API.
type RequestError struct {
	Error    string `json:"error"`
	ErrorTip string `json:"error_tip,omitempty"`
}
