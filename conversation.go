package imagestudio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fixed assistant wording, kept identical across sessions so transcripts are
// predictable for users and tests alike.
const (
	greetingUploaded = "Image uploaded successfully! What would you like me to help you with?"
	greetingReset    = "Conversation reset. How can I help you refine this image?"
	replyRefined     = "Here's your refined image. What would you like to adjust next?"
	replyError       = "Sorry, I encountered an error processing your request. Please try again."
)

// Message is one entry in a refinement conversation transcript. Messages are
// append-only and never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	ImageRef  string    `json:"imageRef,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newMessage(role Role, text, imageRef string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		ImageRef:  imageRef,
		CreatedAt: time.Now(),
	}
}

// RefinementSession threads "current image" state across successive edit
// turns. Each turn's output becomes the next turn's input; a failed turn is
// recorded in the transcript but never touches the image lineage.
//
// One session serves one conversation. Sessions are safe for concurrent use,
// but only one turn may be in flight at a time: a Send that arrives while
// another is processing returns ErrTurnInFlight without changing anything.
type RefinementSession struct {
	gen    ImageGenerator
	config *GenerateConfig
	store  RenderedImageStore
	logger *slog.Logger

	mu         sync.Mutex
	inFlight   bool
	base       *InputImage
	current    *GeneratedImage
	currentRef string
	history    []Message
	lastErr    error
}

// SessionOption configures a RefinementSession.
type SessionOption func(*RefinementSession)

// SessionWithConfig sets the generation config used for every turn.
func SessionWithConfig(config *GenerateConfig) SessionOption {
	return func(s *RefinementSession) {
		if config != nil {
			s.config = config
		}
	}
}

// SessionWithLogger sets a structured logger for the session.
func SessionWithLogger(logger *slog.Logger) SessionOption {
	return func(s *RefinementSession) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// SessionWithImageStore attaches a rendered-image store. Results of
// successful turns are put into it and referenced from transcript messages;
// the session releases the current reference when a newer result supersedes
// it and releases everything it still holds on Close.
func SessionWithImageStore(store RenderedImageStore) SessionOption {
	return func(s *RefinementSession) {
		s.store = store
	}
}

// NewRefinementSession creates a session in the idle state. Begin or Adopt
// seeds the base image before the first turn.
func NewRefinementSession(gen ImageGenerator, opts ...SessionOption) *RefinementSession {
	s := &RefinementSession{
		gen:     gen,
		config:  DefaultConfig(),
		logger:  slog.Default(),
		history: make([]Message, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin seeds the session with an uploaded image: the base and current image
// are set, any previous transcript is discarded, and a greeting is appended.
func (s *RefinementSession) Begin(image InputImage) error {
	if err := ValidateInputImage(image); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return ErrTurnInFlight
	}

	s.releaseAllLocked()
	img := GeneratedImage{Data: image.Data, MIMEType: image.MIMEType}
	ref := s.renderLocked(img)

	s.base = &image
	s.current = &img
	s.currentRef = ref
	s.lastErr = nil
	s.history = []Message{newMessage(RoleAssistant, greetingUploaded, ref)}
	return nil
}

// Adopt hands a result produced by a different mode (generate or compose) to
// this session as its starting point. The result goes through the same
// conversion as the post-turn lineage step, so mode switching is
// indistinguishable from a manual upload downstream.
func (s *RefinementSession) Adopt(img GeneratedImage) error {
	input, err := img.AsInput()
	if err != nil {
		return err
	}
	return s.Begin(input)
}

// Send runs one refinement turn: the user instruction is appended to the
// transcript immediately, a single edit call is made against the current
// base image, and the transcript and lineage are updated according to the
// outcome. On failure the base image and current image are left untouched.
func (s *RefinementSession) Send(ctx context.Context, instructions string) (*GeneratedImage, error) {
	if err := ValidatePrompt(instructions); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	if s.base == nil {
		s.mu.Unlock()
		return nil, ErrNoBaseImage
	}

	base := *s.base
	s.history = append(s.history, newMessage(RoleUser, instructions, ""))
	s.inFlight = true
	s.mu.Unlock()

	img, err := s.gen.Edit(ctx, base, instructions, s.config)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.lastErr = err
		s.history = append(s.history, newMessage(RoleAssistant, replyError, ""))
		return nil, err
	}

	s.lastErr = nil

	ref := s.renderLocked(*img)
	if s.currentRef != "" && s.store != nil {
		s.store.Release(s.currentRef)
	}
	s.current = img
	s.currentRef = ref
	s.history = append(s.history, newMessage(RoleAssistant, replyRefined, ref))

	// Seed the next turn. Conversion can fail on its own; the turn stays
	// successful and the previous base remains in effect.
	if next, cerr := img.AsInput(); cerr != nil {
		s.logger.Warn("keeping previous base image",
			"error", cerr.Error(),
		)
	} else {
		s.base = &next
	}

	return img, nil
}

// Reset clears the transcript and rolls the current image back to the base
// image. The base image itself is kept, so refinement can start over from
// the original upload.
func (s *RefinementSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return
	}

	s.releaseAllLocked()

	if s.base == nil {
		s.history = s.history[:0]
		s.lastErr = nil
		return
	}

	img := GeneratedImage{Data: s.base.Data, MIMEType: s.base.MIMEType}
	ref := s.renderLocked(img)
	s.current = &img
	s.currentRef = ref
	s.lastErr = nil
	s.history = []Message{newMessage(RoleAssistant, greetingReset, ref)}
}

// History returns a copy of the conversation transcript.
func (s *RefinementSession) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	historyCopy := make([]Message, len(s.history))
	copy(historyCopy, s.history)
	return historyCopy
}

// BaseImage returns the image the next turn will edit, if any.
func (s *RefinementSession) BaseImage() (InputImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.base == nil {
		return InputImage{}, false
	}
	return *s.base, true
}

// CurrentImage returns the most recent result, if any.
func (s *RefinementSession) CurrentImage() (GeneratedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return GeneratedImage{}, false
	}
	return *s.current, true
}

// LastError returns the structured error of the most recent failed turn, or
// nil if the last turn succeeded. This is the programmatic channel; the
// transcript carries the human-readable one.
func (s *RefinementSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Processing reports whether a turn is currently in flight.
func (s *RefinementSession) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Close releases any rendered-image references the session still holds. The
// session must not be used afterwards.
func (s *RefinementSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseAllLocked()
	s.base = nil
	s.current = nil
	s.history = nil
}

// renderLocked stores the rendered form of an image and returns its
// reference, or "" when no store is attached. Callers hold s.mu.
func (s *RefinementSession) renderLocked(img GeneratedImage) string {
	if s.store == nil {
		return ""
	}
	ref, err := s.store.Put(img)
	if err != nil {
		s.logger.Warn("failed to store rendered image",
			"error", err.Error(),
		)
		return ""
	}
	return ref
}

func (s *RefinementSession) releaseAllLocked() {
	if s.store == nil {
		return
	}
	seen := make(map[string]bool)
	if s.currentRef != "" {
		seen[s.currentRef] = true
		s.store.Release(s.currentRef)
	}
	for _, msg := range s.history {
		if msg.ImageRef != "" && !seen[msg.ImageRef] {
			seen[msg.ImageRef] = true
			s.store.Release(msg.ImageRef)
		}
	}
	s.currentRef = ""
}
