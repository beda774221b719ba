// Package board holds the in-memory Kanban state for one recruiter session:
// the authoritative candidate list, pure derivations over it (columns,
// lookup maps), and optimistic move handling with rollback. Rendering and
// transport live elsewhere; this package only manages state.
package board

import (
	"careers/internal/api/models"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrConfirmationRequired suspends a move into selected until the user
	// explicitly confirms it.
	ErrConfirmationRequired = errors.New("confirmation required before selecting candidate")
	ErrUnknownCandidate     = errors.New("candidate not on board")
)

// StatusUpdater is the server call issued after the optimistic local apply.
// An error rolls the local move back.
type StatusUpdater interface {
	UpdateStatus(candidateID uint, status models.CandidateStatus, confirmed bool) error
}

// RoundInfo is the slice of round state the board cares about.
type RoundInfo struct {
	Round              models.RoundLabel
	InterviewEmailSent bool
}

// Card is the board's projection of a candidate.
type Card struct {
	ID             uint
	Name           string
	Email          string
	JobID          uint
	JobTitle       string
	Status         models.CandidateStatus
	FinalEmailSent bool
	Rounds         []RoundInfo
}

// Move describes one drag-end event.
type Move struct {
	CandidateID uint
	From        models.CandidateStatus
	FromIndex   int
	To          models.CandidateStatus
	ToIndex     int
	// Confirmed is set after the user approves the selected-column modal.
	Confirmed bool
}

// RoundKey identifies one (candidate, round) pair in the scheduled lookup.
type RoundKey struct {
	CandidateID uint
	Round       models.RoundLabel
}

// Board is single-session state: one recruiter, one tab. All methods take
// the lock; cross-session consistency comes from full reloads, not from
// this type.
type Board struct {
	mu      sync.Mutex
	cards   []Card
	updater StatusUpdater
	jobID   *uint
	search  string
	version uint64

	// memoized derivations, recomputed only when version moves
	memoVersion uint64
	memoValid   bool
	scheduled   map[RoundKey]bool
	finalEmails map[uint]bool
}

func New(updater StatusUpdater, cards []Card) *Board {
	return &Board{
		updater: updater,
		cards:   append([]Card(nil), cards...),
	}
}

// Reload replaces the whole list, e.g. after a background refresh.
func (b *Board) Reload(cards []Card) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = append([]Card(nil), cards...)
	b.version++
}

// FilterByJob narrows the visible board to one job; nil shows all jobs.
func (b *Board) FilterByJob(jobID *uint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobID = jobID
}

// Search sets the free-text filter over name and email.
func (b *Board) Search(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = strings.ToLower(strings.TrimSpace(text))
}

func (b *Board) matches(c Card) bool {
	if b.jobID != nil && c.JobID != *b.jobID {
		return false
	}
	if b.search != "" &&
		!strings.Contains(strings.ToLower(c.Name), b.search) &&
		!strings.Contains(strings.ToLower(c.Email), b.search) {
		return false
	}
	return true
}

// Columns derives the visible board grouping. Column membership is never
// stored; it is recomputed from the card list on every call.
func (b *Board) Columns() map[models.CandidateStatus][]Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	columns := make(map[models.CandidateStatus][]Card, len(models.PipelineColumns()))
	for _, status := range models.PipelineColumns() {
		columns[status] = []Card{}
	}
	for _, c := range b.cards {
		if !b.matches(c) {
			continue
		}
		columns[c.Status] = append(columns[c.Status], c)
	}
	return columns
}

// Move validates and applies a drag-end event. The local status flips
// before the server call so the UI reflects the move immediately; a server
// failure reverts it and returns the error. The committed database write is
// never touched by the revert.
func (b *Board) Move(move Move) error {
	if move.From == move.To && move.FromIndex == move.ToIndex {
		return nil
	}

	b.mu.Lock()
	idx := b.indexOf(move.CandidateID)
	if idx < 0 {
		b.mu.Unlock()
		return ErrUnknownCandidate
	}
	current := b.cards[idx].Status

	if err := models.CanTransition(current, move.To); err != nil {
		b.mu.Unlock()
		return err
	}
	if move.To == models.StatusSelected && current != models.StatusSelected && !move.Confirmed {
		b.mu.Unlock()
		return ErrConfirmationRequired
	}
	if current == move.To {
		b.mu.Unlock()
		return nil
	}

	// Optimistic apply with captured undo.
	undo := current
	b.cards[idx].Status = move.To
	b.version++
	b.mu.Unlock()

	if err := b.updater.UpdateStatus(move.CandidateID, move.To, move.Confirmed); err != nil {
		b.mu.Lock()
		if i := b.indexOf(move.CandidateID); i >= 0 {
			b.cards[i].Status = undo
			b.version++
		}
		b.mu.Unlock()
		return err
	}
	return nil
}

func (b *Board) indexOf(candidateID uint) int {
	for i, c := range b.cards {
		if c.ID == candidateID {
			return i
		}
	}
	return -1
}

// StatusOf reports the board's current belief about a candidate's status.
func (b *Board) StatusOf(candidateID uint) (models.CandidateStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(candidateID); i >= 0 {
		return b.cards[i].Status, true
	}
	return "", false
}

// ScheduledInterviews returns which (candidate, round) pairs already had a
// scheduling email sent. Derived from the card list and memoized on its
// version, never stored separately.
func (b *Board) ScheduledInterviews() map[RoundKey]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshMemos()
	return b.scheduled
}

// FinalEmailsSent returns the candidates whose offer/rejection mail is out.
func (b *Board) FinalEmailsSent() map[uint]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshMemos()
	return b.finalEmails
}

func (b *Board) refreshMemos() {
	if b.memoValid && b.memoVersion == b.version {
		return
	}
	scheduled := make(map[RoundKey]bool)
	finalEmails := make(map[uint]bool)
	for _, c := range b.cards {
		for _, r := range c.Rounds {
			if r.InterviewEmailSent {
				scheduled[RoundKey{CandidateID: c.ID, Round: r.Round}] = true
			}
		}
		if c.FinalEmailSent {
			finalEmails[c.ID] = true
		}
	}
	b.scheduled = scheduled
	b.finalEmails = finalEmails
	b.memoVersion = b.version
	b.memoValid = true
}
