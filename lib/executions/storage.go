package executions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const executionColumns = `id, project_id, sandbox_id, command, stdout, stderr, exit_code, duration_seconds, status, error, truncated, started_at, completed_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(row scanner) (*Execution, error) {
	var (
		e           Execution
		projectID   sql.NullString
		exitCode    sql.NullInt64
		completedAt sql.NullTime
	)
	err := row.Scan(&e.ID, &projectID, &e.SandboxID, &e.Command, &e.Stdout, &e.Stderr, &exitCode,
		&e.DurationSeconds, &e.Status, &e.Error, &e.Truncated, &e.StartedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	e.ProjectID = projectID.String
	if exitCode.Valid {
		code := int(exitCode.Int64)
		e.ExitCode = &code
	}
	if completedAt.Valid {
		t := completedAt.Time
		e.CompletedAt = &t
	}
	return &e, nil
}

func insertExecution(ctx context.Context, db *sql.DB, e *Execution) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO executions (`+executionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, nullString(e.ProjectID), e.SandboxID, e.Command, e.Stdout, e.Stderr, nullInt(e.ExitCode),
		e.DurationSeconds, e.Status, e.Error, e.Truncated, e.StartedAt, nullTime(e.CompletedAt))
	if err != nil {
		return fmt.Errorf("insert execution: %w", err)
	}
	return nil
}

func saveExecution(ctx context.Context, db *sql.DB, e *Execution) error {
	res, err := db.ExecContext(ctx,
		`UPDATE executions SET stdout = ?, stderr = ?, exit_code = ?, duration_seconds = ?, status = ?,
			error = ?, truncated = ?, completed_at = ? WHERE id = ?`,
		e.Stdout, e.Stderr, nullInt(e.ExitCode), e.DurationSeconds, e.Status,
		e.Error, e.Truncated, nullTime(e.CompletedAt), e.ID)
	if err != nil {
		return fmt.Errorf("update execution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	return nil
}

func loadExecution(ctx context.Context, db *sql.DB, id string) (*Execution, error) {
	row := db.QueryRowContext(ctx, `SELECT `+executionColumns+` FROM executions WHERE id = ?`, id)
	e, err := scanExecution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load execution: %w", err)
	}
	return e, nil
}

func queryExecutions(ctx context.Context, db *sql.DB, where string, args ...any) ([]Execution, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+executionColumns+` FROM executions `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	out := []Execution{}
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
