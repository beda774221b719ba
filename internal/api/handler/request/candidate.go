package request

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
	// Confirmed must be true when moving a candidate into selected.
	Confirmed bool `json:"confirmed"`
}

type SaveRoundDTO struct {
	Round         string  `json:"round" validate:"required"`
	Notes         *string `json:"notes"`
	Rating        *int    `json:"rating"`
	Interviewer   *string `json:"interviewer"`
	InterviewDate *string `json:"interviewDate"`
}

type MarkEmailSentDTO struct {
	Type  string  `json:"type" validate:"required,oneof=interview final"`
	Round *string `json:"round"`
}

type GenerateInsightDTO struct {
	// Force regenerates even when an insight already exists.
	Force bool `json:"force"`
}
