package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/internal/observability"
)

// Localized user-facing messages.
const (
	msgUseStart      = "Por favor, use o comando /start para iniciar a entrevista de adoção."
	msgThanks        = "Obrigado por completar a entrevista! Seu formulário de adoção foi enviado para análise."
	msgApology       = "Desculpe, ocorreu um erro inesperado. Por favor, tente novamente."
	msgRenderFailed  = "Desculpe, não conseguimos gerar o seu formulário agora. Suas respostas estão salvas, tente novamente em instantes."
	msgPhotoReceived = "Foto recebida! Você pode enviar mais fotos ou continuar respondendo."
)

// QA pairs a question prompt with its accepted answer.
type QA struct {
	Question string
	Answer   string
}

// Record is the completed interview handed to rendering and persistence.
// It is a snapshot: user identity and animal selection are captured at
// completion time, not re-fetched.
type Record struct {
	User        UserSnapshot
	AnimalType  catalog.Type
	AnimalID    *int
	AnimalName  string
	Answers     []QA
	PhotoPaths  []string
	CompletedAt time.Time
}

// Renderer produces a document from a completed interview and returns its
// location. An error must leave no partial file behind.
type Renderer interface {
	Render(ctx context.Context, record *Record) (string, error)
}

// Archive persists completed interviews in an append-only external store.
type Archive interface {
	SaveInterview(ctx context.Context, record *Record, documentPath string) (int64, error)
}

// Courier delivers messages and files over the chat transport. Each send
// is independently failable.
type Courier interface {
	SendText(ctx context.Context, recipient, text string) error
	SendDocument(ctx context.Context, recipient, path, caption string) error
	SendPhoto(ctx context.Context, recipient, path, caption string) error
}

// FileStore stores and deletes temporary interview artifacts.
type FileStore interface {
	Store(ctx context.Context, data []byte, category string) (string, error)
	Delete(ctx context.Context, path string) error
}

// CatalogReader is the read-only view of the animal catalog the core needs.
type CatalogReader interface {
	GetAnimal(t catalog.Type, id int) (*catalog.Animal, bool)
}

// Reply is what the transport should say back to the user for an inbound
// event.
type Reply struct {
	Text string
	// Done reports that the interview finished with this event.
	Done bool
}

// Service routes inbound user events to the per-user session state machine
// and runs the completion pipeline when the questionnaire finishes.
type Service struct {
	sessions  *SessionStore
	questions []Question

	catalog  CatalogReader
	renderer Renderer
	archive  Archive
	courier  Courier
	files    FileStore

	operatorRecipient string
	logger            *slog.Logger
}

// NewService wires the interview core with its collaborators.
func NewService(
	sessions *SessionStore,
	questions []Question,
	catalogReader CatalogReader,
	renderer Renderer,
	archive Archive,
	courier Courier,
	files FileStore,
	operatorRecipient string,
	logger *slog.Logger,
) *Service {
	if len(questions) == 0 {
		questions = DefaultQuestions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions:          sessions,
		questions:         questions,
		catalog:           catalogReader,
		renderer:          renderer,
		archive:           archive,
		courier:           courier,
		files:             files,
		operatorRecipient: operatorRecipient,
		logger:            logger,
	}
}

// Sessions exposes the session store for introspection.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Questions returns the fixed questionnaire.
func (s *Service) Questions() []Question {
	return s.questions
}

// Start begins (or silently restarts) an interview for the user and returns
// the first question. Any prior session for the same user is discarded.
func (s *Service) Start(ctx context.Context, user UserSnapshot, animalType catalog.Type, animalID *int) *Reply {
	reqCtx := observability.NewRequestContext(s.logger, "start", user.ID)
	s.sessions.CreateOrReplace(user, animalType, animalID)
	reqCtx.Info("interview started",
		slog.String(observability.LogFieldAnimalType, string(animalType)))
	return &Reply{Text: s.questions[0].Text}
}

// HandleAnswer applies a text answer to the user's active session.
func (s *Service) HandleAnswer(ctx context.Context, userID, text string) *Reply {
	reqCtx := observability.NewRequestContext(s.logger, "answer", userID)

	var reply *Reply
	found, err := s.sessions.Update(userID, func(session *Session) error {
		if session.Status != StatusActive {
			reply = &Reply{Text: msgUseStart}
			return nil
		}

		result, err := session.SubmitAnswer(s.questions, text)
		if err != nil {
			ve, ok := AsValidation(err)
			if !ok {
				return err
			}
			reqCtx.Debug("answer rejected",
				slog.String("reason", ve.Reason),
				slog.Int(observability.LogFieldQuestionIndex, session.Cursor))
			reply = &Reply{Text: ve.Prompt + "\n\n" + s.questions[session.Cursor].Text}
			return nil
		}

		if result.Done {
			reply = s.complete(ctx, reqCtx, session)
			return nil
		}
		reply = &Reply{Text: result.Next.Text}
		return nil
	})
	if err != nil {
		reqCtx.Error("failed to handle answer", err)
		return &Reply{Text: msgApology}
	}
	if !found {
		return &Reply{Text: msgUseStart}
	}
	reqCtx.Info("answer handled", slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return reply
}

// HandlePhoto stores photo bytes and attaches the file reference to the
// user's active session. Photos never advance the questionnaire.
func (s *Service) HandlePhoto(ctx context.Context, userID string, data []byte) *Reply {
	reqCtx := observability.NewRequestContext(s.logger, "photo", userID)

	var reply *Reply
	found, err := s.sessions.Update(userID, func(session *Session) error {
		if session.Status != StatusActive {
			reply = &Reply{Text: msgUseStart}
			return nil
		}

		path, err := s.files.Store(ctx, data, "photos")
		if err != nil {
			reqCtx.Error("failed to store photo", err)
			reply = &Reply{Text: msgApology}
			return nil
		}
		session.SubmitPhoto(path)
		reqCtx.Info("photo attached", slog.String("path", path))
		reply = &Reply{Text: msgPhotoReceived}
		return nil
	})
	if err != nil {
		reqCtx.Error("failed to handle photo", err)
		return &Reply{Text: msgApology}
	}
	if !found {
		return &Reply{Text: msgUseStart}
	}
	return reply
}
