package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"careers/internal/board"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrConfirmationRequired   = errors.New("moving a candidate into selected requires confirmation")
	ErrInterviewRoundRequired = errors.New("round is required for interview emails")
)

// PipelineService owns the recruiter side of the hiring pipeline: board
// listings, candidate detail, status transitions and the email-sent markers.
type PipelineService struct {
	candidateRepo   *repo.CandidateRepository
	roundRepo       *repo.RoundRepository
	logger          zerolog.Logger
	candidateMapper mapper.CandidateMapper
}

func NewPipelineService() *PipelineService {
	return &PipelineService{
		candidateRepo: repo.NewCandidateRepository(),
		roundRepo:     repo.NewRoundRepository(),
		logger:        careers.Logger,
	}
}

// ListForBoard returns all non-withdrawn candidates, optionally narrowed to
// one job and to a free-text name/email search. The two filters compose.
func (slf *PipelineService) ListForBoard(jobID *uint, search string) ([]response.CandidateResponseDTO, error) {
	var candidates []models.Candidate
	var err error
	if search != "" {
		candidates, err = slf.candidateRepo.SearchForBoard(jobID, search)
	} else {
		candidates, err = slf.candidateRepo.FindForBoard(jobID)
	}
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing candidates for board")
		return nil, err
	}
	return slf.candidateMapper.EntitiesToCandidateResponses(candidates), nil
}

// BoardCards projects the board listing into in-memory board cards.
func (slf *PipelineService) BoardCards(jobID *uint) ([]board.Card, error) {
	candidates, err := slf.candidateRepo.FindForBoard(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error loading board cards")
		return nil, err
	}
	cards := make([]board.Card, 0, len(candidates))
	for _, c := range candidates {
		rounds := make([]board.RoundInfo, 0, len(c.Rounds))
		for _, r := range c.Rounds {
			rounds = append(rounds, board.RoundInfo{
				Round:              r.Round,
				InterviewEmailSent: r.InterviewEmailSent,
			})
		}
		cards = append(cards, board.Card{
			ID:             c.ID,
			Name:           c.Name,
			Email:          c.Email,
			JobID:          c.JobID,
			JobTitle:       c.Job.Title,
			Status:         c.Status,
			FinalEmailSent: c.FinalEmailSent,
			Rounds:         rounds,
		})
	}
	return cards, nil
}

// GetCandidate loads the full detail view: job, round history, latest insight.
func (slf *PipelineService) GetCandidate(id uint) (response.CandidateDetailDTO, error) {
	candidate, err := slf.candidateRepo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.CandidateDetailDTO{}, ErrCandidateNotFound
		}
		slf.logger.Error().Err(err).Uint("candidateId", id).Msg("Error loading candidate")
		return response.CandidateDetailDTO{}, err
	}
	return slf.candidateMapper.EntityToCandidateDetail(candidate), nil
}

// UpdateStatus validates the transition against the pipeline rules and
// persists it. Moving into selected additionally requires the confirmed
// flag, so no surface can commit that transition by accident.
func (slf *PipelineService) UpdateStatus(id uint, dto request.UpdateStatusDTO) (response.CandidateResponseDTO, error) {
	newStatus, err := models.ParseStatus(dto.Status)
	if err != nil {
		return response.CandidateResponseDTO{}, err
	}

	candidate, err := slf.candidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.CandidateResponseDTO{}, ErrCandidateNotFound
		}
		slf.logger.Error().Err(err).Uint("candidateId", id).Msg("Error loading candidate")
		return response.CandidateResponseDTO{}, err
	}

	if err := models.CanTransition(candidate.Status, newStatus); err != nil {
		return response.CandidateResponseDTO{}, err
	}
	if newStatus == models.StatusSelected && candidate.Status != models.StatusSelected && !dto.Confirmed {
		return response.CandidateResponseDTO{}, ErrConfirmationRequired
	}

	updated, err := slf.candidateRepo.UpdateStatus(id, newStatus)
	if err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", id).Msg("Error updating status")
		return response.CandidateResponseDTO{}, err
	}

	slf.logger.Info().
		Uint("candidateId", id).
		Str("from", string(candidate.Status)).
		Str("to", string(newStatus)).
		Msg("Candidate status updated")
	return slf.candidateMapper.EntityToCandidateResponse(updated), nil
}

// MarkEmailSent records that a recruiter sent the scheduling or final mail.
// Repeating the action is a no-op at the data level; the flags only move
// one way. Interview markers lazily create the round row.
func (slf *PipelineService) MarkEmailSent(id uint, dto request.MarkEmailSentDTO) error {
	if _, err := slf.candidateRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}

	switch dto.Type {
	case "final":
		if err := slf.candidateRepo.MarkFinalEmailSent(id); err != nil {
			slf.logger.Error().Err(err).Uint("candidateId", id).Msg("Error marking final email sent")
			return err
		}
	case "interview":
		if dto.Round == nil {
			return ErrInterviewRoundRequired
		}
		round, err := models.ParseRound(*dto.Round)
		if err != nil {
			return err
		}
		if err := slf.roundRepo.MarkInterviewEmailSent(id, round); err != nil {
			slf.logger.Error().Err(err).Uint("candidateId", id).Msg("Error marking interview email sent")
			return err
		}
	default:
		return errors.New("invalid email type")
	}
	return nil
}
