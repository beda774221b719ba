package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("round_2")
	require.NoError(t, err)
	assert.Equal(t, StatusRound2, status)

	// Legacy values map onto the current vocabulary
	status, err = ParseStatus("submitted")
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)

	status, err = ParseStatus("in_review")
	require.NoError(t, err)
	assert.Equal(t, StatusRound1, status)

	_, err = ParseStatus("interviewing")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestCanTransition_Forward(t *testing.T) {
	assert.NoError(t, CanTransition(StatusApplied, StatusRound1))
	assert.NoError(t, CanTransition(StatusRound1, StatusRound2))
	assert.NoError(t, CanTransition(StatusRound3, StatusSelected))

	// Skipping stages forward is allowed
	assert.NoError(t, CanTransition(StatusApplied, StatusRound3))
	assert.NoError(t, CanTransition(StatusRound1, StatusSelected))
}

func TestCanTransition_Backward(t *testing.T) {
	assert.Error(t, CanTransition(StatusRound2, StatusRound1))
	assert.Error(t, CanTransition(StatusSelected, StatusRound3))
	assert.Error(t, CanTransition(StatusRound1, StatusApplied))
}

func TestCanTransition_Rejected(t *testing.T) {
	// Any non-terminal status can be rejected
	assert.NoError(t, CanTransition(StatusApplied, StatusRejected))
	assert.NoError(t, CanTransition(StatusRound2, StatusRejected))
	assert.NoError(t, CanTransition(StatusRound3, StatusRejected))
}

func TestCanTransition_Terminal(t *testing.T) {
	assert.Error(t, CanTransition(StatusRejected, StatusRound1))
	assert.Error(t, CanTransition(StatusWithdrawn, StatusApplied))
	assert.Error(t, CanTransition(StatusRejected, StatusSelected))
	// A selected candidate cannot be moved anywhere, including rejected
	assert.Error(t, CanTransition(StatusSelected, StatusRejected))
}

func TestCanTransition_SamePosition(t *testing.T) {
	assert.NoError(t, CanTransition(StatusRound2, StatusRound2))
	assert.NoError(t, CanTransition(StatusRejected, StatusRejected))
}

func TestCanTransition_Withdrawn(t *testing.T) {
	// Withdrawal is an applicant action, never a recruiter transition
	assert.Error(t, CanTransition(StatusApplied, StatusWithdrawn))
	assert.Error(t, CanTransition(StatusRound1, StatusWithdrawn))
}

func TestPipelineColumns(t *testing.T) {
	columns := PipelineColumns()
	require.Len(t, columns, 6)
	assert.Equal(t, StatusApplied, columns[0])
	assert.Equal(t, StatusSelected, columns[4])
	assert.Equal(t, StatusRejected, columns[5])

	// Withdrawn applications never show on the board
	for _, status := range columns {
		assert.NotEqual(t, StatusWithdrawn, status)
	}
}

func TestParseRound(t *testing.T) {
	round, err := ParseRound("round_1")
	require.NoError(t, err)
	assert.Equal(t, Round1, round)

	_, err = ParseRound("round_4")
	assert.Error(t, err)

	_, err = ParseRound("applied")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusWithdrawn.IsTerminal())
	assert.True(t, StatusSelected.IsTerminal())
	assert.False(t, StatusApplied.IsTerminal())
}
