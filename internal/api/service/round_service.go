package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// RoundService upserts per-round interview metadata. A save with every field
// empty is valid: it records that the round was reached but not documented.
// Notes are deliberately not tied to the candidate's current status.
type RoundService struct {
	roundRepo       *repo.RoundRepository
	candidateRepo   *repo.CandidateRepository
	logger          zerolog.Logger
	candidateMapper mapper.CandidateMapper
}

func NewRoundService() *RoundService {
	return &RoundService{
		roundRepo:     repo.NewRoundRepository(),
		candidateRepo: repo.NewCandidateRepository(),
		logger:        careers.Logger,
	}
}

// ParseInterviewDate validates and normalizes an optional RFC3339 date-time
// to UTC.
func ParseInterviewDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("interviewDate must be a valid RFC3339 date-time: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}

// ValidateRating accepts nil (cleared) or a value in [1, 5].
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Save upserts the round record for (candidate, round). The second save for
// the same key overwrites the first; there is never more than one row.
func (slf *RoundService) Save(candidateID uint, dto request.SaveRoundDTO) (response.RoundResponseDTO, error) {
	round, err := models.ParseRound(dto.Round)
	if err != nil {
		return response.RoundResponseDTO{}, err
	}
	if err := ValidateRating(dto.Rating); err != nil {
		return response.RoundResponseDTO{}, err
	}
	interviewDate, err := ParseInterviewDate(dto.InterviewDate)
	if err != nil {
		return response.RoundResponseDTO{}, err
	}

	if _, err := slf.candidateRepo.FindByID(candidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.RoundResponseDTO{}, ErrCandidateNotFound
		}
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error loading candidate for round save")
		return response.RoundResponseDTO{}, err
	}

	record := models.CandidateRound{
		CandidateID:   candidateID,
		Round:         round,
		Notes:         dto.Notes,
		Rating:        dto.Rating,
		Interviewer:   dto.Interviewer,
		InterviewDate: interviewDate,
	}
	if err := slf.roundRepo.Upsert(&record); err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Str("round", string(round)).Msg("Error saving round")
		return response.RoundResponseDTO{}, err
	}

	slf.logger.Info().Uint("candidateId", candidateID).Str("round", string(round)).Msg("Round notes saved")
	return slf.candidateMapper.EntityToRoundResponse(record), nil
}

// ListForCandidate returns the round history in creation order.
func (slf *RoundService) ListForCandidate(candidateID uint) ([]response.RoundResponseDTO, error) {
	rounds, err := slf.roundRepo.FindByCandidate(candidateID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error listing rounds")
		return nil, err
	}
	out := make([]response.RoundResponseDTO, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, slf.candidateMapper.EntityToRoundResponse(r))
	}
	return out, nil
}
