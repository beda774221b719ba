package service

import (
	"careers"
	"careers/internal/api/handler/request"
	"careers/internal/api/models"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResumeUploader stands in for the storage client so Submit can be
// exercised without a bucket.
type fakeResumeUploader struct {
	uploads int
	url     string
	err     error
}

func (slf *fakeResumeUploader) UploadResume(filename string, contentType string, data io.Reader) (string, error) {
	slf.uploads++
	if slf.err != nil {
		return "", slf.err
	}
	return slf.url, nil
}

func submitDTO(jobID uint, email string) request.SubmitApplicationDTO {
	return request.SubmitApplicationDTO{
		JobID:   jobID,
		Name:    "Test Applicant",
		Email:   email,
		Contact: "+4512345678",
		WhyFit:  "I have relevant experience with Go services",
	}
}

func TestApplication_Submit(t *testing.T) {
	setupPipelineTestDB(t)
	uploader := &fakeResumeUploader{url: "https://storage.example.com/resumes/submitted.pdf"}
	service := NewApplicationService()
	service.uploader = uploader

	user := createTestUser(t)
	defer careers.DB.Unscoped().Delete(&models.User{}, user.ID)
	job := createTestJob(t)
	defer careers.DB.Delete(&models.Job{}, job.ID)

	created, err := service.Submit(user.ID, submitDTO(job.ID, user.Email),
		"resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	defer careers.DB.Delete(&models.Candidate{}, created.ID)

	assert.Equal(t, "applied", created.Status)
	assert.Equal(t, uploader.url, created.ResumeURL)
	assert.Equal(t, job.Title, created.Job.Title)
	assert.Equal(t, 1, uploader.uploads)

	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, created.ID).Error)
	assert.Equal(t, models.StatusApplied, stored.Status)
	assert.Equal(t, uploader.url, stored.ResumeURL)
}

func TestApplication_Submit_Duplicate(t *testing.T) {
	setupPipelineTestDB(t)
	uploader := &fakeResumeUploader{url: "https://storage.example.com/resumes/dup.pdf"}
	service := NewApplicationService()
	service.uploader = uploader

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	_, err := service.Submit(user.ID, submitDTO(job.ID, user.Email),
		"resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	// The duplicate check runs before the upload, so nothing was stored
	assert.Equal(t, 0, uploader.uploads)
}

func TestApplication_Submit_UploadFailureAborts(t *testing.T) {
	setupPipelineTestDB(t)
	uploader := &fakeResumeUploader{err: errors.New("bucket unavailable")}
	service := NewApplicationService()
	service.uploader = uploader

	user := createTestUser(t)
	defer careers.DB.Unscoped().Delete(&models.User{}, user.ID)
	job := createTestJob(t)
	defer careers.DB.Delete(&models.Job{}, job.ID)

	_, err := service.Submit(user.ID, submitDTO(job.ID, user.Email),
		"resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.Error(t, err)

	var count int64
	require.NoError(t, careers.DB.Model(&models.Candidate{}).
		Where("user_id = ? AND job_id = ?", user.ID, job.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplication_Withdraw(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewApplicationService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	require.NoError(t, service.Withdraw(user.ID, candidate.ID))

	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.Equal(t, models.StatusWithdrawn, stored.Status)
}

func TestApplication_Withdraw_NotOwner(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewApplicationService()

	user := createTestUser(t)
	other := createTestUser(t)
	defer careers.DB.Unscoped().Delete(&models.User{}, other.ID)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	err := service.Withdraw(other.ID, candidate.ID)
	assert.ErrorIs(t, err, ErrNotApplicationOwner)
}

func TestApplication_Withdraw_OnlyFromApplied(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewApplicationService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusRound2)
	defer cleanupCandidate(t, candidate)

	// Once the pipeline has started the applicant can no longer withdraw
	err := service.Withdraw(user.ID, candidate.ID)
	assert.ErrorIs(t, err, ErrWithdrawNotAllowed)

	var stored models.Candidate
	require.NoError(t, careers.DB.First(&stored, candidate.ID).Error)
	assert.Equal(t, models.StatusRound2, stored.Status)
}

func TestApplication_ListForUser(t *testing.T) {
	setupPipelineTestDB(t)
	service := NewApplicationService()

	user := createTestUser(t)
	job := createTestJob(t)
	candidate := createTestCandidate(t, user.ID, job.ID, models.StatusApplied)
	defer cleanupCandidate(t, candidate)

	applications, err := service.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, candidate.ID, applications[0].ID)
	assert.Equal(t, "applied", applications[0].Status)
}
