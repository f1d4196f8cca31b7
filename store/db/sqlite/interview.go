package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/adotepet/adotepet/store"
)

func (d *DB) UpsertInterviewee(ctx context.Context, upsert *store.Interviewee) (*store.Interviewee, error) {
	stmt := `INSERT INTO interviewee (user_id, username, first_name, last_name)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			updated_ts = strftime('%s', 'now')
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.UserID, upsert.Username, upsert.FirstName, upsert.LastName,
	).Scan(
		&upsert.ID,
		&upsert.CreatedTs,
		&upsert.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert interviewee: %w", err)
	}

	return upsert, nil
}

func (d *DB) ListInterviewees(ctx context.Context, find *store.FindInterviewee) ([]*store.Interviewee, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "interviewee.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "interviewee.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, user_id, username, first_name, last_name, created_ts, updated_ts
		FROM interviewee
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY interviewee.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviewees: %w", err)
	}
	defer rows.Close()

	list := []*store.Interviewee{}
	for rows.Next() {
		interviewee := &store.Interviewee{}
		if err := rows.Scan(
			&interviewee.ID,
			&interviewee.UserID,
			&interviewee.Username,
			&interviewee.FirstName,
			&interviewee.LastName,
			&interviewee.CreatedTs,
			&interviewee.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interviewee: %w", err)
		}
		list = append(list, interviewee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) CreateInterview(ctx context.Context, create *store.Interview) (*store.Interview, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := `INSERT INTO interview (interviewee_id, animal_type, animal_id, animal_name, document_path)
		VALUES (` + placeholders(5) + `)
		RETURNING id, created_ts`
	if err := tx.QueryRowContext(ctx, stmt,
		create.IntervieweeID, create.AnimalType, create.AnimalID, create.AnimalName, create.DocumentPath,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	for _, answer := range create.Answers {
		answer.InterviewID = create.ID
		stmt := `INSERT INTO interview_answer (interview_id, question_index, question, answer)
			VALUES (` + placeholders(4) + `)
			RETURNING id`
		if err := tx.QueryRowContext(ctx, stmt,
			answer.InterviewID, answer.QuestionIndex, answer.Question, answer.Answer,
		).Scan(&answer.ID); err != nil {
			return nil, fmt.Errorf("failed to create interview answer: %w", err)
		}
	}

	for _, file := range create.Files {
		file.InterviewID = create.ID
		stmt := `INSERT INTO interview_file (interview_id, path, kind)
			VALUES (` + placeholders(3) + `)
			RETURNING id`
		if err := tx.QueryRowContext(ctx, stmt,
			file.InterviewID, file.Path, file.Kind,
		).Scan(&file.ID); err != nil {
			return nil, fmt.Errorf("failed to create interview file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return create, nil
}

func (d *DB) ListInterviews(ctx context.Context, find *store.FindInterview) ([]*store.Interview, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "interview.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IntervieweeID; v != nil {
		where, args = append(where, "interview.interviewee_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, interviewee_id, animal_type, animal_id, animal_name, document_path, created_ts
		FROM interview
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY interview.created_ts DESC, interview.id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	list := []*store.Interview{}
	for rows.Next() {
		interview := &store.Interview{}
		if err := rows.Scan(
			&interview.ID,
			&interview.IntervieweeID,
			&interview.AnimalType,
			&interview.AnimalID,
			&interview.AnimalName,
			&interview.DocumentPath,
			&interview.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		list = append(list, interview)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, interview := range list {
		if err := d.loadAnswers(ctx, interview); err != nil {
			return nil, err
		}
		if err := d.loadFiles(ctx, interview); err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (d *DB) loadAnswers(ctx context.Context, interview *store.Interview) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, interview_id, question_index, question, answer
		FROM interview_answer
		WHERE interview_id = `+placeholder(1)+` ORDER BY question_index ASC`, interview.ID)
	if err != nil {
		return fmt.Errorf("failed to list interview answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		answer := &store.InterviewAnswer{}
		if err := rows.Scan(
			&answer.ID,
			&answer.InterviewID,
			&answer.QuestionIndex,
			&answer.Question,
			&answer.Answer,
		); err != nil {
			return fmt.Errorf("failed to scan interview answer: %w", err)
		}
		interview.Answers = append(interview.Answers, answer)
	}
	return rows.Err()
}

func (d *DB) loadFiles(ctx context.Context, interview *store.Interview) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, interview_id, path, kind
		FROM interview_file
		WHERE interview_id = `+placeholder(1)+` ORDER BY id ASC`, interview.ID)
	if err != nil {
		return fmt.Errorf("failed to list interview files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		file := &store.InterviewFile{}
		if err := rows.Scan(
			&file.ID,
			&file.InterviewID,
			&file.Path,
			&file.Kind,
		); err != nil {
			return fmt.Errorf("failed to scan interview file: %w", err)
		}
		interview.Files = append(interview.Files, file)
	}
	return rows.Err()
}
