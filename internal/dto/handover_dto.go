package dto

type HandoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type HandoverResponse struct {
	Shift  int    `json:"shift"`
	Status string `json:"status"` // always "queued"
}
