package models

// FormData is the contact block of a submission.
type FormData struct {
	WorkshopTitle string `json:"workshopTitle"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// PayloadItem is one line as the send-email endpoint expects it.
type PayloadItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// SubmissionPayload is the body of POST /send-email.
type SubmissionPayload struct {
	Code     string        `json:"code"`
	Items    []PayloadItem `json:"items"`
	Subtotal string        `json:"subtotal"`
	FormData FormData      `json:"formData"`
}

// CheckResponse is the body of GET /check/{code}.
type CheckResponse struct {
	Status bool `json:"status"`
}

// SendAck is the acknowledgment returned by the send-email endpoint.
type SendAck struct {
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message,omitempty"`
}
