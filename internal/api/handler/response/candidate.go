package response

import "time"

type RoundResponseDTO struct {
	ID                 uint       `json:"id"`
	Round              string     `json:"round"`
	Notes              *string    `json:"notes"`
	Rating             *int       `json:"rating"`
	Interviewer        *string    `json:"interviewer"`
	InterviewDate      *time.Time `json:"interviewDate"`
	InterviewEmailSent bool       `json:"interviewEmailSent"`
}

type InsightResponseDTO struct {
	ID        uint      `json:"id"`
	Score     int       `json:"score"`
	Insights  []string  `json:"insights"`
	CreatedAt time.Time `json:"createdAt"`
}

// CandidateResponseDTO is the board card: candidate with job reference and
// round history.
type CandidateResponseDTO struct {
	ID             uint               `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Contact        string             `json:"contact"`
	Status         string             `json:"status"`
	WhyFit         string             `json:"whyFit"`
	Portfolio      *string            `json:"portfolio"`
	Linkedin       *string            `json:"linkedin"`
	Github         *string            `json:"github"`
	ResumeURL      string             `json:"resumeUrl"`
	FinalEmailSent bool               `json:"finalEmailSent"`
	Job            JobRefDTO          `json:"job"`
	Rounds         []RoundResponseDTO `json:"rounds"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// CandidateDetailDTO adds the latest insight to the full card.
type CandidateDetailDTO struct {
	CandidateResponseDTO
	LatestInsight *InsightResponseDTO `json:"latestInsight"`
}

// ApplicationResponseDTO is the applicant-facing view of their own
// application.
type ApplicationResponseDTO struct {
	ID        uint      `json:"id"`
	JobTitle  string    `json:"jobTitle"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
