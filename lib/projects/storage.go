package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const projectColumns = `id, name, description, language, sandbox_id, main_file, cpu_limit, memory_limit, created_at, updated_at, last_executed`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*Project, error) {
	var p Project
	var lastExecuted sql.NullTime
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Language, &p.SandboxID, &p.MainFile,
		&p.CPULimit, &p.MemoryLimit, &p.CreatedAt, &p.UpdatedAt, &lastExecuted)
	if err != nil {
		return nil, err
	}
	if lastExecuted.Valid {
		t := lastExecuted.Time
		p.LastExecuted = &t
	}
	return &p, nil
}

func insertProject(ctx context.Context, db *sql.DB, p *Project) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Language, p.SandboxID, p.MainFile,
		p.CPULimit, p.MemoryLimit, p.CreatedAt, p.UpdatedAt, nullTime(p.LastExecuted))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func loadProject(ctx context.Context, db *sql.DB, id string) (*Project, error) {
	row := db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return p, nil
}

func listProjects(ctx context.Context, db *sql.DB) ([]*Project, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func saveProject(ctx context.Context, db *sql.DB, p *Project) error {
	res, err := db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, sandbox_id = ?, main_file = ?, cpu_limit = ?,
			memory_limit = ?, updated_at = ?, last_executed = ? WHERE id = ?`,
		p.Name, p.Description, p.SandboxID, p.MainFile, p.CPULimit,
		p.MemoryLimit, p.UpdatedAt, nullTime(p.LastExecuted), p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireOne(res, p.ID)
}

func deleteProject(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireOne(res, id)
}

func requireOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
