package interview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adotepet/adotepet/internal/observability"
)

// complete runs the completion pipeline for a session that just reached
// Completed. It executes under the session store's per-user lock, so no
// concurrent mutation can touch the session until the entry is removed.
//
// Recovery policy per step:
//   - render failure aborts: the session stays Completed and retrievable,
//     photos are kept, the user is told to retry;
//   - persistence failure is non-fatal to the user flow but is surfaced
//     to the operator channel;
//   - each delivery is independently failable, one failed photo never
//     aborts the rest;
//   - cleanup is best-effort and always attempted;
//   - the session is removed last.
func (s *Service) complete(ctx context.Context, reqCtx *observability.RequestContext, session *Session) *Reply {
	record := s.snapshotRecord(session)

	documentPath, err := s.renderer.Render(ctx, record)
	if err != nil {
		reqCtx.Error("failed to render interview document", err)
		return &Reply{Text: msgRenderFailed}
	}

	interviewID, err := s.archive.SaveInterview(ctx, record, documentPath)
	if err != nil {
		reqCtx.Error("failed to persist interview", err)
		alert := fmt.Sprintf("Falha ao salvar a entrevista de %s no banco de dados: %v", record.User.DisplayName(), err)
		if sendErr := s.courier.SendText(ctx, s.operatorRecipient, alert); sendErr != nil {
			reqCtx.Error("failed to alert operator about persistence failure", sendErr)
		}
	} else {
		reqCtx.Info("interview persisted",
			slog.Int64(observability.LogFieldInterviewID, interviewID))
	}

	s.deliver(ctx, reqCtx, record, documentPath)
	s.cleanup(ctx, reqCtx, record, documentPath)

	session.Status = StatusInactive
	s.sessions.Remove(session.UserID)

	reqCtx.Info("interview completed",
		slog.Int(observability.LogFieldQuestionIndex, session.Cursor),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return &Reply{Text: msgThanks, Done: true}
}

// snapshotRecord assembles the completed interview record. Pure, cannot
// fail: missing catalog entries just leave the animal name empty.
func (s *Service) snapshotRecord(session *Session) *Record {
	answers := make([]QA, 0, len(session.Answers))
	for _, answer := range session.Answers {
		answers = append(answers, QA{
			Question: s.questions[answer.QuestionIndex].Text,
			Answer:   answer.Text,
		})
	}

	record := &Record{
		User:        session.User,
		AnimalType:  session.AnimalType,
		AnimalID:    session.AnimalID,
		Answers:     answers,
		PhotoPaths:  append([]string(nil), session.PhotoPaths...),
		CompletedAt: time.Now(),
	}
	if session.AnimalID != nil && s.catalog != nil {
		if animal, ok := s.catalog.GetAnimal(session.AnimalType, *session.AnimalID); ok {
			record.AnimalName = animal.Name
		}
	}
	return record
}

// deliver sends the document to the applicant and the full dossier to the
// operator channel. Every send failure is caught and skipped.
func (s *Service) deliver(ctx context.Context, reqCtx *observability.RequestContext, record *Record, documentPath string) {
	if err := s.courier.SendDocument(ctx, record.User.ID, documentPath, msgThanks); err != nil {
		reqCtx.Error("failed to send document to applicant", err)
	}

	caption := fmt.Sprintf("Entrevista de adoção - %s (%s)", record.User.DisplayName(), record.AnimalType)
	if err := s.courier.SendDocument(ctx, s.operatorRecipient, documentPath, caption); err != nil {
		reqCtx.Error("failed to send document to operator", err)
	}
	for i, photo := range record.PhotoPaths {
		photoCaption := fmt.Sprintf("Foto %d/%d - %s", i+1, len(record.PhotoPaths), record.User.DisplayName())
		if err := s.courier.SendPhoto(ctx, s.operatorRecipient, photo, photoCaption); err != nil {
			reqCtx.Error("failed to send photo to operator", err,
				slog.String("path", photo))
		}
	}
}

// cleanup deletes the rendered document and the stored photos. Each
// deletion is independently best-effort; a missing file is not an error.
func (s *Service) cleanup(ctx context.Context, reqCtx *observability.RequestContext, record *Record, documentPath string) {
	if err := s.files.Delete(ctx, documentPath); err != nil {
		reqCtx.Warn("failed to delete rendered document",
			slog.String("path", documentPath),
			slog.String("error", err.Error()))
	}
	for _, photo := range record.PhotoPaths {
		if err := s.files.Delete(ctx, photo); err != nil {
			reqCtx.Warn("failed to delete stored photo",
				slog.String("path", photo),
				slog.String("error", err.Error()))
		}
	}
}
