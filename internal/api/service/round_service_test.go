package service

import (
	"careers"
	"careers/internal/api/handler/request"
	"careers/internal/api/models"
	"careers/pkg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterviewDate(t *testing.T) {
	parsed, err := ParseInterviewDate(pkg.ToPtr("2026-09-15T14:30:00+02:00"))
	require.NoError(t, err)
	require.NotNil(t, parsed)

	// Normalized to UTC
	assert.Equal(t, time.UTC, parsed.Location())
	assert.Equal(t, 12, parsed.Hour())
}

func TestParseInterviewDate_Empty(t *testing.T) {
	parsed, err := ParseInterviewDate(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	parsed, err = ParseInterviewDate(pkg.ToPtr(""))
	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestParseInterviewDate_Invalid(t *testing.T) {
	_, err := ParseInterviewDate(pkg.ToPtr("15/09/2026 14:30"))
	assert.Error(t, err)

	_, err = ParseInterviewDate(pkg.ToPtr("2026-09-15"))
	assert.Error(t, err)
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(nil))
	assert.NoError(t, ValidateRating(pkg.ToPtr(1)))
	assert.NoError(t, ValidateRating(pkg.ToPtr(5)))

	assert.ErrorIs(t, ValidateRating(pkg.ToPtr(0)), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(pkg.ToPtr(6)), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(pkg.ToPtr(-3)), ErrInvalidRating)
}

func TestRound_Save_Upsert(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewRoundService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound1)
	defer cleanupCandidate(t, candidate)

	saved, err := service.Save(candidate.ID, request.SaveRoundDTO{
		Round:       "round_1",
		Notes:       pkg.ToPtr("solid system design answers"),
		Rating:      pkg.ToPtr(4),
		Interviewer: pkg.ToPtr("Jonas"),
	})
	require.NoError(t, err)
	assert.Equal(t, "round_1", saved.Round)
	require.NotNil(t, saved.Rating)
	assert.Equal(t, 4, *saved.Rating)

	// Saving the same round again overwrites instead of adding a row
	saved, err = service.Save(candidate.ID, request.SaveRoundDTO{
		Round:  "round_1",
		Notes:  pkg.ToPtr("follow-up went even better"),
		Rating: pkg.ToPtr(5),
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Notes)
	assert.Equal(t, "follow-up went even better", *saved.Notes)

	var count int64
	careers.DB.Model(&models.CandidateRound{}).
		Where("candidate_id = ? AND round = ?", candidate.ID, "round_1").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRound_Save_InvalidRound(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewRoundService()

	_, err := service.Save(1, request.SaveRoundDTO{Round: "round_9"})
	assert.Error(t, err)
}

func TestRound_Save_CandidateNotFound(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewRoundService()

	_, err := service.Save(999999, request.SaveRoundDTO{Round: "round_1"})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
