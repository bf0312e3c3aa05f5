package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
)

// TaskRepo handles persistence for Task records.
type TaskRepo struct{}

// Create inserts a new task. The task must carry a valid domain and a
// positive estimate; the engine-side checks are repeated here so bad
// rows never reach the database.
func (r *TaskRepo) Create(ctx context.Context, db *sql.DB, task domain.Task) error {
	if !task.Domain.Known() {
		return &domain.EngineError{
			Code:    domain.ErrUnknownDomain.Code,
			Message: domain.ErrUnknownDomain.Message + ": " + string(task.Domain),
		}
	}
	if task.EstimatedMinutes <= 0 {
		return domain.ErrInvalidDuration
	}

	const q = `INSERT INTO tasks (id, description, domain, estimated_minutes, deadline_unix, status, actual_minutes, completed_at_unix, project_id, created_at_unix)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
	_, err := db.ExecContext(ctx, q,
		task.ID,
		task.Description,
		string(task.Domain),
		task.EstimatedMinutes,
		deadlineUnix(task.Deadline),
		string(task.Status),
		task.ActualMinutes,
		task.ProjectID,
		task.CreatedAtUnix,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateTask
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepo) GetByID(ctx context.Context, db *sql.DB, id string) (*domain.Task, error) {
	row := db.QueryRowContext(ctx, selectTasks+` WHERE id = ?`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListPending returns all pending tasks, the engine's working snapshot.
func (r *TaskRepo) ListPending(ctx context.Context, db *sql.DB) ([]domain.Task, error) {
	return r.list(ctx, db, selectTasks+` WHERE status = ? ORDER BY created_at_unix, id`, string(domain.StatusPending))
}

// ListByProject returns all tasks for a project, any status.
func (r *TaskRepo) ListByProject(ctx context.Context, db *sql.DB, projectID string) ([]domain.Task, error) {
	return r.list(ctx, db, selectTasks+` WHERE project_id = ? ORDER BY created_at_unix, id`, projectID)
}

// Complete transitions a pending task to completed, recording the actual
// minutes spent and the completion time. Completing a task twice is an
// error, as is a non-positive actual duration.
func (r *TaskRepo) Complete(ctx context.Context, db *sql.DB, id string, actualMinutes int, at time.Time) error {
	if actualMinutes <= 0 {
		return domain.ErrInvalidDuration
	}

	const q = `UPDATE tasks SET status = ?, actual_minutes = ?, completed_at_unix = ?
WHERE id = ? AND status = ?`
	res, err := db.ExecContext(ctx, q,
		string(domain.StatusCompleted),
		actualMinutes,
		at.Unix(),
		id,
		string(domain.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a missing row from a finished one.
		if _, getErr := r.GetByID(ctx, db, id); getErr != nil {
			return getErr
		}
		return domain.ErrTaskAlreadyDone
	}
	return nil
}

// ListCompletedBetween returns tasks completed in [from, to), ordered by
// completion time.
func (r *TaskRepo) ListCompletedBetween(ctx context.Context, db *sql.DB, from, to time.Time) ([]domain.Task, error) {
	return r.list(ctx, db,
		selectTasks+` WHERE status = ? AND completed_at_unix >= ? AND completed_at_unix < ? ORDER BY completed_at_unix, id`,
		string(domain.StatusCompleted), from.Unix(), to.Unix())
}

// ListUpcoming returns pending tasks whose deadline falls within horizon
// of now, soonest first, at most limit of them.
func (r *TaskRepo) ListUpcoming(ctx context.Context, db *sql.DB, now time.Time, horizon time.Duration, limit int) ([]domain.Task, error) {
	return r.list(ctx, db,
		selectTasks+` WHERE status = ? AND deadline_unix IS NOT NULL AND deadline_unix >= ? AND deadline_unix <= ? ORDER BY deadline_unix, id LIMIT ?`,
		string(domain.StatusPending), now.Unix(), now.Add(horizon).Unix(), limit)
}

const selectTasks = `SELECT id, description, domain, estimated_minutes, deadline_unix, status, actual_minutes, project_id, created_at_unix FROM tasks`

func (r *TaskRepo) list(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.Task, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t        domain.Task
		d, s     string
		deadline sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Description, &d, &t.EstimatedMinutes, &deadline,
		&s, &t.ActualMinutes, &t.ProjectID, &t.CreatedAtUnix)
	if err != nil {
		return nil, err
	}
	t.Domain = domain.Domain(d)
	t.Status = domain.TaskStatus(s)
	if deadline.Valid {
		at := time.Unix(deadline.Int64, 0).UTC()
		t.Deadline = &at
	}
	return &t, nil
}

func deadlineUnix(deadline *time.Time) any {
	if deadline == nil {
		return nil
	}
	return deadline.Unix()
}
