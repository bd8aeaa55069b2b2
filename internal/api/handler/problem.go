package handler

// ProblemDetails is the RFC 7807 error envelope returned on every 4xx/5xx
// response.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// MIMEApplicationProblemJSON is the media type of ProblemDetails bodies.
const MIMEApplicationProblemJSON = "application/problem+json"
