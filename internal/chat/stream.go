package chat

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/realtime"
)

// Stream states. A stream moves Uninitialized -> LoadingHistory -> Live
// and stays Live until closed.
const (
	StateUninitialized int32 = iota
	StateLoadingHistory
	StateLive
)

// Stream is one consumer's merged view of the chat: the full history
// followed by live inserts, each message exactly once. The hub
// subscription is taken before the history fetch, and live deliveries
// are deduplicated against the fetched ids, so a message inserted
// during the fetch cannot be missed or doubled.
type Stream struct {
	C <-chan models.Message

	out   chan models.Message
	sub   *realtime.Subscription
	state atomic.Int32
	once  sync.Once
	done  chan struct{}
}

// Open starts a stream over the service's store and hub. The returned
// stream must be closed when the consumer goes away; the hub
// subscription is not released otherwise.
func (s *Service) Open() *Stream {
	st := &Stream{
		out:  make(chan models.Message, 256),
		done: make(chan struct{}),
	}
	st.C = st.out
	st.state.Store(StateUninitialized)

	// Subscribe before fetching so nothing inserted mid-fetch is lost.
	st.sub = s.Hub.Subscribe()
	st.state.Store(StateLoadingHistory)

	go st.run(s)
	return st
}

// State returns the current lifecycle state.
func (st *Stream) State() int32 {
	return st.state.Load()
}

// Close releases the hub subscription and ends delivery. Mandatory.
func (st *Stream) Close() {
	st.once.Do(func() {
		close(st.done)
		st.sub.Close()
	})
}

func (st *Stream) run(s *Service) {
	defer close(st.out)

	history, err := s.Messages.History()
	if err != nil {
		// still go live; the view starts empty
		log.Printf("chat: history fetch failed: %v", err)
	}

	seen := make(map[uint]struct{}, len(history))
	for _, msg := range history {
		seen[msg.ID] = struct{}{}
		if !st.emit(msg) {
			return
		}
	}

	st.state.Store(StateLive)

	for {
		select {
		case <-st.done:
			return
		case msg, ok := <-st.sub.C:
			if !ok {
				return
			}
			// deliveries racing the history fetch show up here too
			if _, dup := seen[msg.ID]; dup {
				continue
			}
			if !st.emit(msg) {
				return
			}
		}
	}
}

func (st *Stream) emit(msg models.Message) bool {
	select {
	case <-st.done:
		return false
	case st.out <- msg:
		return true
	}
}
