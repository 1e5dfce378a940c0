package usecase

// Rejection is a business-rule outcome of the booking pipeline, not an
// infrastructure failure. It carries the HTTP status the API layer must
// return for this reason.
type Rejection struct {
	Reason string
	Status int
}

func (r *Rejection) Error() string {
	return r.Reason
}

func reject(reason string, status int) *Rejection {
	return &Rejection{Reason: reason, Status: status}
}
