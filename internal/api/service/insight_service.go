package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// fallbackKeywords signal hands-on experience in an application text.
var fallbackKeywords = []string{"experience", "project", "led", "managed", "developed", "built"}

const fallbackDisclaimer = "Note: AI analysis unavailable, using basic matching"

// InsightService evaluates candidate fit against a job. The LLM path asks
// for a single JSON object; any call or parse failure drops to a
// deterministic heuristic instead of aborting. Scores are clamped to
// [0, 100] before persisting on every path, and each generation writes
// exactly one immutable row.
type InsightService struct {
	insightRepo     *repo.InsightRepository
	candidateRepo   *repo.CandidateRepository
	generator       TextGenerator
	logger          zerolog.Logger
	candidateMapper mapper.CandidateMapper
}

// TextGenerator matches pkg.TextGenerator; redeclared here so tests can
// inject a fake without importing pkg.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func NewInsightService(generator TextGenerator) *InsightService {
	return &InsightService{
		insightRepo:   repo.NewInsightRepository(),
		candidateRepo: repo.NewCandidateRepository(),
		generator:     generator,
		logger:        careers.Logger,
	}
}

// Generate produces (or returns) the candidate's fit insight. First-wins:
// when an insight already exists and force is false, the latest row is
// returned and nothing new is written.
func (slf *InsightService) Generate(candidateID uint, force bool) (response.InsightResponseDTO, error) {
	candidate, err := slf.candidateRepo.FindByIDFull(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InsightResponseDTO{}, ErrCandidateNotFound
		}
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error loading candidate for insight")
		return response.InsightResponseDTO{}, err
	}

	if !force && len(candidate.Insights) > 0 {
		return slf.candidateMapper.EntityToInsightResponse(candidate.Insights[0]), nil
	}

	job := candidate.Job
	resumeText := ""
	if candidate.ResumeText != nil {
		resumeText = *candidate.ResumeText
	}
	if resumeText == "" {
		resumeText = fmt.Sprintf("Resume file available at: %s. Candidate's statement: %s", candidate.ResumeURL, candidate.WhyFit)
	}

	score, insights := slf.evaluate(job, candidate, resumeText)
	score = ClampScore(score)

	record := models.AIInsight{
		CandidateID: candidateID,
		JobJD:       job.Description,
		ResumeText:  resumeText,
		Score:       score,
		Insights:    insights,
	}
	if err := slf.insightRepo.Create(&record); err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error persisting insight")
		return response.InsightResponseDTO{}, err
	}

	slf.logger.Info().Uint("candidateId", candidateID).Int("score", score).Msg("Insight generated")
	return slf.candidateMapper.EntityToInsightResponse(record), nil
}

func (slf *InsightService) evaluate(job models.Job, candidate models.Candidate, resumeText string) (int, []string) {
	prompt := BuildInsightPrompt(job.Title, job.Description, job.Skills, candidate.Name, candidate.WhyFit, resumeText)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := slf.generator.Generate(ctx, prompt)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("candidateId", candidate.ID).Msg("LLM call failed, using fallback heuristic")
		return FallbackInsight(job.Skills, candidate.WhyFit, resumeText)
	}

	score, insights, err := ParseInsightResponse(raw)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("candidateId", candidate.ID).Msg("Unusable LLM response, using fallback heuristic")
		return FallbackInsight(job.Skills, candidate.WhyFit, resumeText)
	}
	return score, insights
}

// BuildInsightPrompt embeds the job and candidate context and demands a bare
// JSON object back.
func BuildInsightPrompt(jobTitle string, jobDescription string, skills []string, candidateName string, whyFit string, resumeText string) string {
	if resumeText == "" {
		resumeText = "Resume text not available"
	}
	return fmt.Sprintf(`You are an expert technical recruiter analyzing a job candidate.

Job Position: %s

Job Description:
%s

Required Skills: %s

Candidate Information:
- Name: %s
- Why they're interested: %s
- Resume/Background: %s

Please analyze this candidate and provide:
1. A match score from 0-100 (where 100 is a perfect match)
2. 4-6 specific insights about their fit for this role

Consider:
- Technical skill alignment
- Experience relevance
- Cultural fit indicators
- Potential concerns or gaps
- Unique strengths

Respond ONLY with valid JSON in this exact format:
{
  "score": <number between 0-100>,
  "insights": [
    "insight 1",
    "insight 2",
    "insight 3",
    "insight 4"
  ]
}

Do not include any text outside the JSON object.`,
		jobTitle, jobDescription, strings.Join(skills, ", "), candidateName, whyFit, resumeText)
}

// StripCodeFences removes a markdown code-fence wrapper some models insist
// on adding around JSON output.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	} else if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```", "")
	}
	return strings.TrimSpace(text)
}

// ParseInsightResponse decodes the model's {score, insights} object.
func ParseInsightResponse(raw string) (int, []string, error) {
	var parsed struct {
		Score    float64  `json:"score"`
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &parsed); err != nil {
		return 0, nil, fmt.Errorf("invalid insight response: %w", err)
	}
	if len(parsed.Insights) == 0 {
		return 0, nil, errors.New("insight response contains no insights")
	}
	return ClampScore(int(parsed.Score)), parsed.Insights, nil
}

// ClampScore forces a score into [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FallbackInsight is the deterministic scoring path used when the AI call
// fails or returns garbage. Base 50; +10 per matched required skill capped
// at +30; +10 for texts over 2000 characters; +10 when at least four of the
// action keywords appear.
func FallbackInsight(skills []string, whyFit string, resumeText string) (int, []string) {
	insights := []string{}
	score := 50

	combinedText := strings.ToLower(whyFit + " " + resumeText)

	var matchedSkills []string
	for _, skill := range skills {
		if strings.Contains(combinedText, strings.ToLower(skill)) {
			matchedSkills = append(matchedSkills, skill)
		}
	}

	if len(matchedSkills) > 0 {
		bonus := len(matchedSkills) * 10
		if bonus > 30 {
			bonus = 30
		}
		score += bonus
		insights = append(insights, fmt.Sprintf("Found %d required skills: %s", len(matchedSkills), strings.Join(matchedSkills, ", ")))
	} else {
		insights = append(insights, "Limited skill match detected")
	}

	if len(combinedText) > 2000 {
		score += 10
		insights = append(insights, "Extensive experience demonstrated")
	}

	keywordMatches := 0
	for _, kw := range fallbackKeywords {
		if strings.Contains(combinedText, kw) {
			keywordMatches++
		}
	}
	if keywordMatches >= 4 {
		score += 10
		insights = append(insights, "Strong action-oriented language in application")
	}

	insights = append(insights, fallbackDisclaimer)

	return ClampScore(score), insights
}
