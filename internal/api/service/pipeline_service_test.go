package service

import (
	"careers"
	"careers/internal/api/handler/request"
	"careers/internal/api/models"
	"careers/pkg"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPipelineTestDB(t *testing.T) {
	careers.InitConfig("../../../.env.test")

	err := careers.DB.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Candidate{},
		&models.CandidateRound{},
		&models.AIInsight{},
	)
	require.NoError(t, err, "Failed to migrate pipeline tables")
}

func createTestUser(t *testing.T) models.User {
	user := models.User{
		Email: fmt.Sprintf("applicant-%d@example.com", time.Now().UnixNano()),
		Name:  "Test Applicant",
		Role:  models.RoleApplicant,
	}
	require.NoError(t, careers.DB.Create(&user).Error)
	return user
}

func createTestJob(t *testing.T) models.Job {
	job := models.Job{
		Title:       "Backend Engineer",
		JobType:     models.JobTypeEngineering,
		Description: "Build and run the hiring platform backend",
		Skills:      []string{"Go", "Postgres"},
		IsActive:    true,
	}
	require.NoError(t, careers.DB.Create(&job).Error)
	return job
}

func createTestCandidate(t *testing.T, userID uint, jobID uint, status models.CandidateStatus) models.Candidate {
	candidate := models.Candidate{
		UserID:    userID,
		JobID:     jobID,
		Name:      "Test Applicant",
		Email:     fmt.Sprintf("candidate-%d@example.com", time.Now().UnixNano()),
		Contact:   "+4512345678",
		WhyFit:    "I have relevant experience with Go services",
		ResumeURL: "https://storage.example.com/resumes/test.pdf",
		Status:    status,
	}
	require.NoError(t, careers.DB.Create(&candidate).Error)
	return candidate
}

func cleanupCandidate(t *testing.T, candidate models.Candidate) {
	careers.DB.Where("candidate_id = ?", candidate.ID).Delete(&models.CandidateRound{})
	careers.DB.Where("candidate_id = ?", candidate.ID).Delete(&models.AIInsight{})
	careers.DB.Delete(&models.Candidate{}, candidate.ID)
	careers.DB.Delete(&models.Job{}, candidate.JobID)
	careers.DB.Unscoped().Delete(&models.User{}, candidate.UserID)
}

func TestPipeline_UpdateStatus_Forward(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	updated, err := service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "round_1"})
	require.NoError(t, err)
	assert.Equal(t, "round_1", updated.Status)
	// The response carries the job reference, not a zero value
	assert.Equal(t, job.Title, updated.Job.Title)

	// Fast-tracking past stages is allowed
	updated, err = service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "round_3"})
	require.NoError(t, err)
	assert.Equal(t, "round_3", updated.Status)
}

func TestPipeline_UpdateStatus_BackwardRejected(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound2)
	defer cleanupCandidate(t, candidate)

	_, err := service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "round_1"})
	require.Error(t, err)

	// The stored status is untouched
	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.Equal(t, models.StatusRound2, stored.Status)
}

func TestPipeline_UpdateStatus_SelectedNeedsConfirmation(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound3)
	defer cleanupCandidate(t, candidate)

	_, err := service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "selected"})
	require.ErrorIs(t, err, ErrConfirmationRequired)

	updated, err := service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "selected", Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, "selected", updated.Status)
}

func TestPipeline_UpdateStatus_LegacyVocabulary(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	// Old clients still send in_review; it is stored as round_1
	updated, err := service.UpdateStatus(candidate.ID, request.UpdateStatusDTO{Status: "in_review"})
	require.NoError(t, err)
	assert.Equal(t, "round_1", updated.Status)
}

func TestPipeline_UpdateStatus_NotFound(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	_, err := service.UpdateStatus(999999, request.UpdateStatusDTO{Status: "round_1"})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestPipeline_MarkEmailSent_Final(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusSelected)
	defer cleanupCandidate(t, candidate)

	require.NoError(t, service.MarkEmailSent(candidate.ID, request.MarkEmailSentDTO{Type: "final"}))

	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.True(t, stored.FinalEmailSent)

	// Marking twice is a no-op, not an error
	require.NoError(t, service.MarkEmailSent(candidate.ID, request.MarkEmailSentDTO{Type: "final"}))
}

func TestPipeline_MarkEmailSent_InterviewCreatesRound(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound1)
	defer cleanupCandidate(t, candidate)

	// No round row exists yet; the marker creates it
	err := service.MarkEmailSent(candidate.ID, request.MarkEmailSentDTO{Type: "interview", Round: pkg.ToPtr("round_1")})
	require.NoError(t, err)

	var round models.CandidateRound
	require.NoError(t, careers.DB.Where("candidate_id = ? AND round = ?", candidate.ID, "round_1").First(&round).Error)
	assert.True(t, round.InterviewEmailSent)
	assert.Nil(t, round.Notes)
}

func TestPipeline_MarkEmailSent_InterviewRequiresRound(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound1)
	defer cleanupCandidate(t, candidate)

	err := service.MarkEmailSent(candidate.ID, request.MarkEmailSentDTO{Type: "interview"})
	assert.ErrorIs(t, err, ErrInterviewRoundRequired)
}

func TestPipeline_ListForBoard_ExcludesWithdrawn(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusWithdrawn)
	defer cleanupCandidate(t, candidate)

	jobID := job.ID
	candidates, err := service.ListForBoard(&jobID, "")
	require.NoError(t, err)
	for _, c := range candidates {
		assert.NotEqual(t, candidate.ID, c.ID)
	}
}

func TestPipeline_ListForBoard_SearchScopedToJob(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewPipelineService()

	user := createTestUser(t)
	jobA := createTestJob(t)
	jobB := createTestJob(t)
	inScope := createTestCandidate(t, user.ID, jobA.ID, models.StatusApplied)
	defer cleanupCandidate(t, inScope)
	outOfScope := createTestCandidate(t, user.ID, jobB.ID, models.StatusApplied)
	defer cleanupCandidate(t, outOfScope)

	// Both candidates match the search text; only one belongs to jobA
	needle := fmt.Sprintf("Shared Needle %d", time.Now().UnixNano())
	require.NoError(t, careers.DB.Model(&models.Candidate{}).
		Where("id IN ?", []uint{inScope.ID, outOfScope.ID}).
		Update("name", needle).Error)

	jobID := jobA.ID
	candidates, err := service.ListForBoard(&jobID, needle)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, inScope.ID, candidates[0].ID)
}
