package chat

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"investpro/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ExchangeState string

const (
	Idle             ExchangeState = "idle"
	AwaitingResponse ExchangeState = "awaiting-response"
)

const (
	DefaultMinDelay = time.Second
	DefaultMaxDelay = 2 * time.Second
)

type Options struct {
	// Replies arrive after a random delay in [MinDelay, MaxDelay).
	MinDelay time.Duration
	MaxDelay time.Duration
	Rand     Rand
	Now      func() time.Time
}

// Exchange is the result of an accepted Send. Reply yields the assistant's answer once
// it is in the transcript, or is closed empty if the session ends first.
type Exchange struct {
	Message models.ChatMessage
	Reply   <-chan models.ChatMessage
}

type pendingReply struct {
	timer *time.Timer
	ch    chan models.ChatMessage
}

// Session is one visitor's chat widget: an append-only transcript, the
// collapsed/expanded flag and the replies still being "typed".
type Session struct {
	mu         sync.Mutex
	assistant  *Assistant
	opts       Options
	log        zerolog.Logger
	transcript []models.ChatMessage
	expanded   bool
	pending    map[uint64]pendingReply
	nextID     uint64
	closed     bool
}

func NewSession(assistant *Assistant, opts Options, log zerolog.Logger) *Session {
	if opts.Rand == nil {
		now := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>1))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}

	s := &Session{
		assistant: assistant,
		opts:      opts,
		log:       log,
		pending:   make(map[uint64]pendingReply),
	}
	if greeting := assistant.Greeting(); greeting != "" {
		s.transcript = append(s.transcript, s.newMessage(greeting, true))
	}
	return s
}

// Send appends a user message and schedules the reply. Blank text, or a closed session,
// leaves everything unchanged and reports false.
func (s *Session) Send(text string) (Exchange, bool) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.Debug().Msg("message dropped, session closed")
		return Exchange{}, false
	}

	message := s.newMessage(text, false)
	s.transcript = append(s.transcript, message)

	replyText := s.assistant.Reply(text, s.opts.Rand)
	delay := s.delay()
	s.nextID++
	id := s.nextID
	ch := make(chan models.ChatMessage, 1)
	timer := time.AfterFunc(delay, func() { s.deliver(id, replyText) })
	s.pending[id] = pendingReply{timer: timer, ch: ch}

	s.log.Debug().Str("message_id", message.ID.String()).Dur("delay", delay).Msg("reply scheduled")
	return Exchange{Message: message, Reply: ch}, true
}

func (s *Session) deliver(id uint64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok || s.closed {
		return
	}
	delete(s.pending, id)

	reply := s.newMessage(text, true)
	s.transcript = append(s.transcript, reply)
	p.ch <- reply
	close(p.ch)
}

func (s *Session) delay() time.Duration {
	span := s.opts.MaxDelay - s.opts.MinDelay
	if span <= 0 {
		return s.opts.MinDelay
	}
	return s.opts.MinDelay + time.Duration(s.opts.Rand.Int64N(int64(span)))
}

func (s *Session) newMessage(text string, fromBot bool) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.New(),
		Text:      text,
		FromBot:   fromBot,
		Timestamp: s.opts.Now(),
	}
}

// Toggle flips the widget between collapsed and expanded and returns the new state.
// Collapsing keeps the transcript and any pending replies.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = !s.expanded
	return s.expanded
}

func (s *Session) Expanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

func (s *Session) State() ExchangeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > 0 {
		return AwaitingResponse
	}
	return Idle
}

func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.transcript...)
}

// QuickQuestions offers the starter prompts until the visitor says something.
func (s *Session) QuickQuestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.transcript) != 1 {
		return nil
	}
	return s.assistant.QuickQuestions()
}

// Close discards the session. Pending replies are cancelled and never appended.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, p := range s.pending {
		p.timer.Stop()
		close(p.ch)
		delete(s.pending, id)
	}
}
