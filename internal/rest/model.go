package rest

// StatusResponse is the health banner served on "/".
type StatusResponse struct {
	Message string `json:"message"`
}

type SchemaResponse struct {
	Collections []string `json:"collections"`
}

// CreatedResponse acknowledges a stored contact message.
type CreatedResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// BookingResponse acknowledges a stored booking request.
type BookingResponse struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ListQuery holds the query parameters of the listing routes.
type ListQuery struct {
	Lang  string
	Limit int
}
