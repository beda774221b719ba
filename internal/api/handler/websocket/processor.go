package websocket

import (
	"careers/internal/api/handler/request"
	"careers/internal/api/models"
	"careers/internal/api/service"
	"careers/internal/board"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// MessageProcessor handles WebSocket messages and performs database operations.
// Each board room gets its own board.Board instance; moves run through its
// optimistic apply-and-rollback path with the pipeline service as the
// persistence call.
type MessageProcessor struct {
	pipelineService *service.PipelineService
	logger          zerolog.Logger

	mu     sync.Mutex
	boards map[uint]*board.Board
}

// boardUpdater adapts the pipeline service to the board's status-update
// contract.
type boardUpdater struct {
	pipeline *service.PipelineService
}

func (slf *boardUpdater) UpdateStatus(candidateID uint, status models.CandidateStatus, confirmed bool) error {
	_, err := slf.pipeline.UpdateStatus(candidateID, request.UpdateStatusDTO{
		Status:    status.String(),
		Confirmed: confirmed,
	})
	return err
}

// NewMessageProcessor creates a new message processor
func NewMessageProcessor(pipelineService *service.PipelineService, logger zerolog.Logger) *MessageProcessor {
	return &MessageProcessor{
		pipelineService: pipelineService,
		logger:          logger,
		boards:          make(map[uint]*board.Board),
	}
}

// ProcessMessage processes a message and performs necessary database operations
// Returns the updated message to broadcast, or error if processing failed
func (p *MessageProcessor) ProcessMessage(msg *Message) (*Message, error) {
	switch msg.Type {
	case MessageTypeCandidateMove:
		return p.processCandidateMove(msg)
	case MessageTypeEmailSent:
		return p.processEmailSent(msg)
	case MessageTypeBoardGet:
		return p.processBoardGet(msg)

	default:
		// Other message types don't require processing (presence, ping)
		return msg, nil
	}
}

func (p *MessageProcessor) validateData(msg *Message, out any) error {
	dataBytes, err := json.Marshal(msg.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal message data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, out); err != nil {
		return fmt.Errorf("invalid message data: %w", err)
	}

	return nil
}

// jobFilter turns the room key into the listing filter; room 0 is all jobs.
func jobFilter(jobID uint) *uint {
	if jobID == 0 {
		return nil
	}
	return &jobID
}

// boardFor returns the room's board, loading it from the store on first use.
func (p *MessageProcessor) boardFor(jobID uint) (*board.Board, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if b, exists := p.boards[jobID]; exists {
		return b, nil
	}
	cards, err := p.pipelineService.BoardCards(jobFilter(jobID))
	if err != nil {
		return nil, err
	}
	b := board.New(&boardUpdater{pipeline: p.pipelineService}, cards)
	p.boards[jobID] = b
	return b, nil
}

// processCandidateMove runs a drag-end event through the room's board: the
// move is validated and applied optimistically, persisted through the
// pipeline service, and rolled back if the write fails. The broadcast
// carries the fully loaded candidate so every open board can re-render the
// card.
func (p *MessageProcessor) processCandidateMove(msg *Message) (*Message, error) {
	var move CandidateMove
	if err := p.validateData(msg, &move); err != nil {
		return nil, err
	}
	status, err := models.ParseStatus(move.Status)
	if err != nil {
		return nil, err
	}

	b, err := p.boardFor(msg.JobID)
	if err != nil {
		return nil, err
	}

	boardMove := board.Move{
		CandidateID: move.CandidateID,
		To:          status,
		Confirmed:   move.Confirmed,
	}
	err = b.Move(boardMove)
	if errors.Is(err, board.ErrUnknownCandidate) {
		// The candidate applied after this room's board was loaded;
		// refresh once and retry.
		cards, cerr := p.pipelineService.BoardCards(jobFilter(msg.JobID))
		if cerr != nil {
			return nil, cerr
		}
		b.Reload(cards)
		err = b.Move(boardMove)
	}
	if err != nil {
		return nil, err
	}

	p.logger.Info().
		Uint("candidateId", move.CandidateID).
		Str("status", move.Status).
		Uint("userId", msg.UserID).
		Msg("Candidate moved via WebSocket")

	detail, err := p.pipelineService.GetCandidate(move.CandidateID)
	if err != nil {
		return nil, err
	}

	out := *msg
	out.Type = ResponseCandidateMove
	out.Data = detail
	return &out, nil
}

func (p *MessageProcessor) processEmailSent(msg *Message) (*Message, error) {
	var mark EmailSent
	if err := p.validateData(msg, &mark); err != nil {
		return nil, err
	}

	if err := p.pipelineService.MarkEmailSent(mark.CandidateID, request.MarkEmailSentDTO{
		Type:  mark.Type,
		Round: mark.Round,
	}); err != nil {
		return nil, err
	}

	out := *msg
	out.Type = ResponseEmailSent
	out.Data = mark
	return &out, nil
}

// processBoardGet refreshes the room's board from the store and returns the
// full listing.
func (p *MessageProcessor) processBoardGet(msg *Message) (*Message, error) {
	b, err := p.boardFor(msg.JobID)
	if err != nil {
		return nil, err
	}
	cards, err := p.pipelineService.BoardCards(jobFilter(msg.JobID))
	if err != nil {
		return nil, err
	}
	b.Reload(cards)

	candidates, err := p.pipelineService.ListForBoard(jobFilter(msg.JobID), "")
	if err != nil {
		return nil, err
	}

	out := *msg
	out.Type = ResponseBoardGet
	out.Data = candidates
	return &out, nil
}
