package rpc

// CreatedResult acknowledges a stored contact message.
type CreatedResult struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// BookingResult acknowledges a stored booking request.
type BookingResult struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id"`
	Message string `json:"message"`
}
