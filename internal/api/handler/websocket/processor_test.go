package websocket

import (
	"careers"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/service"
	"careers/internal/board"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoardTestDB(t *testing.T) {
	careers.InitConfig("../../../../.env.test")

	err := careers.DB.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Candidate{},
		&models.CandidateRound{},
		&models.AIInsight{},
	)
	require.NoError(t, err, "Failed to migrate board tables")
}

func createBoardFixtures(t *testing.T, status models.CandidateStatus) (models.User, models.Job, models.Candidate) {
	user := models.User{
		Email: fmt.Sprintf("board-user-%d@example.com", time.Now().UnixNano()),
		Name:  "Board Tester",
		Role:  models.RoleApplicant,
	}
	require.NoError(t, careers.DB.Create(&user).Error)

	job := models.Job{
		Title:       "Platform Engineer",
		JobType:     models.JobTypeEngineering,
		Description: "Keep the hiring platform running",
		Skills:      []string{"Go"},
		IsActive:    true,
	}
	require.NoError(t, careers.DB.Create(&job).Error)

	candidate := models.Candidate{
		UserID:    user.ID,
		JobID:     job.ID,
		Name:      "Board Tester",
		Email:     user.Email,
		Contact:   "+4512345678",
		WhyFit:    "I keep boards moving",
		ResumeURL: "https://storage.example.com/resumes/board.pdf",
		Status:    status,
	}
	require.NoError(t, careers.DB.Create(&candidate).Error)

	return user, job, candidate
}

func cleanupBoardFixtures(t *testing.T, user models.User, job models.Job, candidates ...models.Candidate) {
	for _, c := range candidates {
		careers.DB.Where("candidate_id = ?", c.ID).Delete(&models.CandidateRound{})
		careers.DB.Where("candidate_id = ?", c.ID).Delete(&models.AIInsight{})
		careers.DB.Delete(&models.Candidate{}, c.ID)
	}
	careers.DB.Delete(&models.Job{}, job.ID)
	careers.DB.Unscoped().Delete(&models.User{}, user.ID)
}

func TestProcessor_CandidateMove_RunsThroughBoard(t *testing.T) {
	setupBoardTestDB(t)
	processor := NewMessageProcessor(service.NewPipelineService(), zerolog.Nop())

	user, job, candidate := createBoardFixtures(t, models.StatusApplied)
	defer cleanupBoardFixtures(t, user, job, candidate)

	msg := Message{
		Type:  MessageTypeCandidateMove,
		JobID: job.ID,
		Data: map[string]any{
			"candidateId": candidate.ID,
			"status":      "round_1",
		},
	}
	out, err := processor.ProcessMessage(&msg)
	require.NoError(t, err)
	assert.Equal(t, ResponseCandidateMove, out.Type)

	// The broadcast payload carries the fully loaded candidate
	detail, ok := out.Data.(response.CandidateDetailDTO)
	require.True(t, ok)
	assert.Equal(t, "round_1", detail.Status)
	assert.Equal(t, job.Title, detail.Job.Title)

	// The move was persisted
	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.Equal(t, models.StatusRound1, stored.Status)

	// The room's board tracked it
	b, err := processor.boardFor(job.ID)
	require.NoError(t, err)
	status, found := b.StatusOf(candidate.ID)
	require.True(t, found)
	assert.Equal(t, models.StatusRound1, status)
}

func TestProcessor_CandidateMove_SelectedNeedsConfirmation(t *testing.T) {
	setupBoardTestDB(t)
	processor := NewMessageProcessor(service.NewPipelineService(), zerolog.Nop())

	user, job, candidate := createBoardFixtures(t, models.StatusRound3)
	defer cleanupBoardFixtures(t, user, job, candidate)

	msg := Message{
		Type:  MessageTypeCandidateMove,
		JobID: job.ID,
		Data: map[string]any{
			"candidateId": candidate.ID,
			"status":      "selected",
		},
	}
	_, err := processor.ProcessMessage(&msg)
	require.ErrorIs(t, err, board.ErrConfirmationRequired)

	// Neither the store nor the board moved
	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.Equal(t, models.StatusRound3, stored.Status)

	b, err := processor.boardFor(job.ID)
	require.NoError(t, err)
	status, found := b.StatusOf(candidate.ID)
	require.True(t, found)
	assert.Equal(t, models.StatusRound3, status)
}

func TestProcessor_CandidateMove_ReloadsForNewCandidate(t *testing.T) {
	setupBoardTestDB(t)
	processor := NewMessageProcessor(service.NewPipelineService(), zerolog.Nop())

	user, job, candidate := createBoardFixtures(t, models.StatusApplied)
	defer cleanupBoardFixtures(t, user, job, candidate)

	// Load the room's board before the second applicant shows up
	_, err := processor.boardFor(job.ID)
	require.NoError(t, err)

	late := models.User{
		Email: fmt.Sprintf("late-user-%d@example.com", time.Now().UnixNano()),
		Name:  "Late Applicant",
		Role:  models.RoleApplicant,
	}
	require.NoError(t, careers.DB.Create(&late).Error)
	defer careers.DB.Unscoped().Delete(&models.User{}, late.ID)

	newcomer := models.Candidate{
		UserID:    late.ID,
		JobID:     job.ID,
		Name:      "Late Applicant",
		Email:     late.Email,
		Contact:   "+4587654321",
		WhyFit:    "Fresh application",
		ResumeURL: "https://storage.example.com/resumes/late.pdf",
		Status:    models.StatusApplied,
	}
	require.NoError(t, careers.DB.Create(&newcomer).Error)
	defer careers.DB.Delete(&models.Candidate{}, newcomer.ID)

	msg := Message{
		Type:  MessageTypeCandidateMove,
		JobID: job.ID,
		Data: map[string]any{
			"candidateId": newcomer.ID,
			"status":      "round_1",
		},
	}
	out, err := processor.ProcessMessage(&msg)
	require.NoError(t, err)
	assert.Equal(t, ResponseCandidateMove, out.Type)

	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, newcomer.ID).Error)
	assert.Equal(t, models.StatusRound1, stored.Status)
}
