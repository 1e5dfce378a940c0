package request

// CreateBookingRequest carries the raw booking fields. Presence and syntax
// are checked by the eligibility pipeline, not struct tags, because the
// rejection messages and their ordering are part of the API contract.
type CreateBookingRequest struct {
	ClassID     string `json:"class_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}
