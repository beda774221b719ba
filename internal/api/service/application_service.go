package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"careers/pkg"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrDuplicateApplication = errors.New("you have already applied for this job")
	ErrNotApplicationOwner  = errors.New("application does not belong to this user")
	ErrWithdrawNotAllowed   = errors.New("only applications still in the applied stage can be withdrawn")
)

// ApplicationService owns the applicant side: submission with resume upload
// and confirmation mail, listing own applications, and withdrawal.
type ApplicationService struct {
	candidateRepo   *repo.CandidateRepository
	jobRepo         *repo.JobRepository
	uploader        pkg.ResumeUploader
	mail            *MailService
	logger          zerolog.Logger
	candidateMapper mapper.CandidateMapper
}

func NewApplicationService() *ApplicationService {
	return &ApplicationService{
		candidateRepo: repo.NewCandidateRepository(),
		jobRepo:       repo.NewJobRepository(),
		uploader:      pkg.NewStorageClient(),
		mail:          NewMailService(),
		logger:        careers.Logger,
	}
}

// Submit creates the candidate row for (user, job). The resume upload is
// mandatory and aborts the submission on failure; the confirmation email is
// fire-and-forget.
func (slf *ApplicationService) Submit(userID uint, dto request.SubmitApplicationDTO, resumeName string, resumeType string, resume io.Reader) (response.CandidateResponseDTO, error) {
	job, err := slf.jobRepo.FindByID(dto.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.CandidateResponseDTO{}, errors.New("job not found")
		}
		slf.logger.Error().Err(err).Uint("jobId", dto.JobID).Msg("Error loading job for application")
		return response.CandidateResponseDTO{}, err
	}

	exists, err := slf.candidateRepo.ExistsByUserAndJob(userID, dto.JobID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking for existing application")
		return response.CandidateResponseDTO{}, err
	}
	if exists {
		return response.CandidateResponseDTO{}, ErrDuplicateApplication
	}

	resumeURL, err := slf.uploader.UploadResume(resumeName, resumeType, resume)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Resume upload failed")
		return response.CandidateResponseDTO{}, fmt.Errorf("failed to upload resume: %w", err)
	}

	candidate := models.Candidate{
		UserID:    userID,
		JobID:     dto.JobID,
		Name:      dto.Name,
		Email:     dto.Email,
		Contact:   dto.Contact,
		WhyFit:    dto.WhyFit,
		Portfolio: dto.Portfolio,
		Linkedin:  dto.Linkedin,
		Github:    dto.Github,
		ResumeURL: resumeURL,
		Status:    models.StatusApplied,
	}
	if err := slf.candidateRepo.Create(&candidate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.CandidateResponseDTO{}, ErrDuplicateApplication
		}
		slf.logger.Error().Err(err).Msg("Error creating candidate")
		return response.CandidateResponseDTO{}, err
	}
	candidate.Job = job

	// Confirmation mail must never block the submission.
	go func() {
		subject, html := ApplicationConfirmationHTML(candidate.Name, job.Title, careers.GetConfig().CompanyName)
		if err := slf.mail.SendTemplatedMail(candidate.Email, candidate.Name, subject, html); err != nil {
			slf.logger.Error().Err(err).Uint("candidateId", candidate.ID).Msg("Failed to send confirmation email")
		}
	}()

	slf.logger.Info().Uint("candidateId", candidate.ID).Uint("jobId", job.ID).Msg("Application submitted")
	return slf.candidateMapper.EntityToCandidateResponse(candidate), nil
}

// ListForUser returns the applicant's own applications, newest first.
func (slf *ApplicationService) ListForUser(userID uint) ([]response.ApplicationResponseDTO, error) {
	candidates, err := slf.candidateRepo.FindByUser(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error listing applications")
		return nil, err
	}
	out := make([]response.ApplicationResponseDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, slf.candidateMapper.EntityToApplicationResponse(c))
	}
	return out, nil
}

// Withdraw soft-removes the application. Only the owner may withdraw, and
// only while the application is still in the applied stage; the row is kept.
func (slf *ApplicationService) Withdraw(userID uint, candidateID uint) error {
	candidate, err := slf.candidateRepo.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("application not found")
		}
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error loading application")
		return err
	}

	if candidate.UserID != userID {
		return ErrNotApplicationOwner
	}
	if candidate.Status != models.StatusApplied {
		return ErrWithdrawNotAllowed
	}

	if _, err := slf.candidateRepo.UpdateStatus(candidateID, models.StatusWithdrawn); err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error withdrawing application")
		return err
	}
	slf.logger.Info().Uint("candidateId", candidateID).Msg("Application withdrawn")
	return nil
}
