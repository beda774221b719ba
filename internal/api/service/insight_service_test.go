package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-20))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 73, ClampScore(73))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(150))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"score": 80}`, StripCodeFences("```json\n{\"score\": 80}\n```"))
	assert.Equal(t, `{"score": 80}`, StripCodeFences("```\n{\"score\": 80}\n```"))
	assert.Equal(t, `{"score": 80}`, StripCodeFences(`  {"score": 80}  `))
}

func TestParseInsightResponse(t *testing.T) {
	score, insights, err := ParseInsightResponse(`{"score": 85, "insights": ["strong Go background", "no cloud experience"]}`)
	require.NoError(t, err)
	assert.Equal(t, 85, score)
	assert.Equal(t, []string{"strong Go background", "no cloud experience"}, insights)
}

func TestParseInsightResponse_Fenced(t *testing.T) {
	raw := "```json\n{\"score\": 120, \"insights\": [\"great fit\"]}\n```"
	score, insights, err := ParseInsightResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, score, "out-of-range scores are clamped")
	assert.Len(t, insights, 1)
}

func TestParseInsightResponse_Garbage(t *testing.T) {
	_, _, err := ParseInsightResponse("I think this candidate is great!")
	assert.Error(t, err)

	_, _, err = ParseInsightResponse(`{"score": 50, "insights": []}`)
	assert.Error(t, err, "empty insights are unusable")
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt := BuildInsightPrompt("Backend Engineer", "Build APIs", []string{"Go", "Postgres"}, "Ada", "I love Go", "10 years of experience")

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Go, Postgres")
	assert.Contains(t, prompt, "Ada")
	assert.Contains(t, prompt, "Respond ONLY with valid JSON")
}

func TestBuildInsightPrompt_NoResume(t *testing.T) {
	prompt := BuildInsightPrompt("Backend Engineer", "Build APIs", nil, "Ada", "I love Go", "")
	assert.Contains(t, prompt, "Resume text not available")
}

func TestFallbackInsight_SkillMatching(t *testing.T) {
	score, insights := FallbackInsight(
		[]string{"Go", "Postgres", "Kubernetes"},
		"I have used go and postgres in production",
		"",
	)

	// Base 50 plus 10 per matched skill
	assert.Equal(t, 70, score)
	require.NotEmpty(t, insights)
	assert.Contains(t, insights[0], "Found 2 required skills")
	assert.Equal(t, "Note: AI analysis unavailable, using basic matching", insights[len(insights)-1])
}

func TestFallbackInsight_SkillBonusCapped(t *testing.T) {
	score, _ := FallbackInsight(
		[]string{"Go", "Postgres", "Redis", "Docker", "Kafka"},
		"go postgres redis docker kafka",
		"",
	)

	// Five matches would be +50, capped at +30
	assert.Equal(t, 80, score)
}

func TestFallbackInsight_NoMatches(t *testing.T) {
	score, insights := FallbackInsight([]string{"Haskell"}, "I write Python", "")

	assert.Equal(t, 50, score)
	assert.Contains(t, insights, "Limited skill match detected")
}

func TestFallbackInsight_LongTextAndKeywords(t *testing.T) {
	resume := strings.Repeat("I developed and built systems. ", 100) +
		"I led a team, managed releases and ran every project with experience."
	score, insights := FallbackInsight(nil, "", resume)

	// Base 50, +10 for length, +10 for action keywords
	assert.Equal(t, 70, score)
	assert.Contains(t, insights, "Extensive experience demonstrated")
	assert.Contains(t, insights, "Strong action-oriented language in application")
}

func TestFallbackInsight_NeverExceedsBounds(t *testing.T) {
	score, _ := FallbackInsight(
		[]string{"Go", "Postgres", "Redis"},
		strings.Repeat("go postgres redis experience project led managed developed built ", 50),
		"",
	)
	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 0)
}
