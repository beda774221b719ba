package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestClient_ValidateMessage_RejectsForeignJob(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient("c1", 7, "Recruiter", 10, hub, nil, NewMessageProcessor(nil, zerolog.Nop()), zerolog.Nop())
	defer close(client.ProcessQueue)

	msg := Message{Type: MessageTypeCandidateMove, JobID: 20}
	assert.False(t, client.validateMessage(&msg))

	// The rejection goes back to this client only
	select {
	case errMsg := <-client.Send:
		assert.Equal(t, MessageTypeError, errMsg.Type)
	default:
		t.Fatal("expected an error message on the send channel")
	}

	// The connection's own job and the all-jobs default pass
	assert.True(t, client.validateMessage(&Message{Type: MessageTypeCandidateMove, JobID: 10}))
	assert.True(t, client.validateMessage(&Message{Type: MessageTypeBoardGet}))
}

func TestClient_WorkerDrainsQueueBeforeSignallingDone(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient("c2", 7, "Recruiter", 10, hub, nil, NewMessageProcessor(nil, zerolog.Nop()), zerolog.Nop())

	// Malformed payload fails decoding, so the worker reports it on Send
	// without touching storage
	client.ProcessQueue <- Message{
		Type:  MessageTypeCandidateMove,
		JobID: 10,
		Data:  map[string]any{"candidateId": "not-a-number"},
	}
	close(client.ProcessQueue)

	select {
	case <-client.workerDone:
	case <-time.After(time.Second):
		t.Fatal("worker did not finish after the queue was closed")
	}

	// The queued message was handled before the worker signalled done, so
	// unregistering (which closes Send) cannot race a late sendError
	select {
	case errMsg := <-client.Send:
		assert.Equal(t, MessageTypeError, errMsg.Type)
	default:
		t.Fatal("expected the failed move to be reported before shutdown")
	}
}
