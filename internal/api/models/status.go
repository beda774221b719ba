package models

import "fmt"

// CandidateStatus is the candidate's position in the hiring pipeline.
type CandidateStatus string

const (
	StatusApplied   CandidateStatus = "applied"
	StatusRound1    CandidateStatus = "round_1"
	StatusRound2    CandidateStatus = "round_2"
	StatusRound3    CandidateStatus = "round_3"
	StatusSelected  CandidateStatus = "selected"
	StatusRejected  CandidateStatus = "rejected"
	StatusWithdrawn CandidateStatus = "withdrawn"
)

// pipelineOrder gives each forward-moving stage its column index.
// rejected and withdrawn sit outside the ordering.
var pipelineOrder = map[CandidateStatus]int{
	StatusApplied:  0,
	StatusRound1:   1,
	StatusRound2:   2,
	StatusRound3:   3,
	StatusSelected: 4,
}

// legacyStatuses maps the old application-review vocabulary onto the
// pipeline vocabulary. Accepted on parse only, never written back.
var legacyStatuses = map[string]CandidateStatus{
	"submitted": StatusApplied,
	"in_review": StatusRound1,
}

func (s CandidateStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusRound1, StatusRound2, StatusRound3,
		StatusSelected, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func (s CandidateStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further recruiter-driven transition exists.
func (s CandidateStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected || s == StatusWithdrawn
}

// PipelineIndex returns the column index of an ordered stage. The second
// value is false for rejected and withdrawn.
func (s CandidateStatus) PipelineIndex() (int, bool) {
	idx, ok := pipelineOrder[s]
	return idx, ok
}

// ParseStatus validates a raw status value, translating legacy vocabulary.
func ParseStatus(raw string) (CandidateStatus, error) {
	if mapped, ok := legacyStatuses[raw]; ok {
		return mapped, nil
	}
	s := CandidateStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown candidate status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether a recruiter may move a candidate from one
// status to another. Moves to rejected are allowed from any non-terminal
// state. Otherwise both states must be ordered stages and the move must not
// go backward; skipping stages forward is allowed (fast-tracking).
// Withdrawn is never reachable here, only through the applicant's own
// withdraw action.
func CanTransition(from, to CandidateStatus) error {
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return fmt.Errorf("candidate is already %s", from)
	}
	if to == StatusRejected {
		return nil
	}
	if to == StatusWithdrawn {
		return fmt.Errorf("withdrawn can only be set by the applicant")
	}
	fromIdx, ok := from.PipelineIndex()
	if !ok {
		return fmt.Errorf("cannot move candidate out of %s", from)
	}
	toIdx, ok := to.PipelineIndex()
	if !ok {
		return fmt.Errorf("cannot move candidate into %s", to)
	}
	if toIdx < fromIdx {
		return fmt.Errorf("cannot move candidate backward from %s to %s", from, to)
	}
	return nil
}

// PipelineColumns lists the board columns in display order, final columns last.
func PipelineColumns() []CandidateStatus {
	return []CandidateStatus{
		StatusApplied, StatusRound1, StatusRound2, StatusRound3,
		StatusSelected, StatusRejected,
	}
}
