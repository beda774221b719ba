package mapper

import (
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
)

type CandidateMapper struct {
	jobMapper JobMapper
}

func (CandidateMapper) EntityToRoundResponse(round models.CandidateRound) response.RoundResponseDTO {
	return response.RoundResponseDTO{
		ID:                 round.ID,
		Round:              string(round.Round),
		Notes:              round.Notes,
		Rating:             round.Rating,
		Interviewer:        round.Interviewer,
		InterviewDate:      round.InterviewDate,
		InterviewEmailSent: round.InterviewEmailSent,
	}
}

func (slf CandidateMapper) EntityToCandidateResponse(candidate models.Candidate) response.CandidateResponseDTO {
	rounds := make([]response.RoundResponseDTO, 0, len(candidate.Rounds))
	for _, r := range candidate.Rounds {
		rounds = append(rounds, slf.EntityToRoundResponse(r))
	}
	return response.CandidateResponseDTO{
		ID:             candidate.ID,
		Name:           candidate.Name,
		Email:          candidate.Email,
		Contact:        candidate.Contact,
		Status:         string(candidate.Status),
		WhyFit:         candidate.WhyFit,
		Portfolio:      candidate.Portfolio,
		Linkedin:       candidate.Linkedin,
		Github:         candidate.Github,
		ResumeURL:      candidate.ResumeURL,
		FinalEmailSent: candidate.FinalEmailSent,
		Job:            slf.jobMapper.EntityToJobRef(candidate.Job),
		Rounds:         rounds,
		CreatedAt:      candidate.CreatedAt,
	}
}

func (slf CandidateMapper) EntitiesToCandidateResponses(candidates []models.Candidate) []response.CandidateResponseDTO {
	out := make([]response.CandidateResponseDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, slf.EntityToCandidateResponse(c))
	}
	return out
}

func (CandidateMapper) EntityToInsightResponse(insight models.AIInsight) response.InsightResponseDTO {
	return response.InsightResponseDTO{
		ID:        insight.ID,
		Score:     insight.Score,
		Insights:  insight.Insights,
		CreatedAt: insight.CreatedAt,
	}
}

// EntityToCandidateDetail builds the detail view; the candidate is expected
// to carry Insights ordered newest first.
func (slf CandidateMapper) EntityToCandidateDetail(candidate models.Candidate) response.CandidateDetailDTO {
	detail := response.CandidateDetailDTO{
		CandidateResponseDTO: slf.EntityToCandidateResponse(candidate),
	}
	if len(candidate.Insights) > 0 {
		insight := slf.EntityToInsightResponse(candidate.Insights[0])
		detail.LatestInsight = &insight
	}
	return detail
}

func (CandidateMapper) EntityToApplicationResponse(candidate models.Candidate) response.ApplicationResponseDTO {
	return response.ApplicationResponseDTO{
		ID:        candidate.ID,
		JobTitle:  candidate.Job.Title,
		Status:    string(candidate.Status),
		CreatedAt: candidate.CreatedAt,
	}
}
