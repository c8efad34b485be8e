package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/promptforge/promptforge-backend/internal/projects/domain"
)

const uniqueViolation = "23505"

const projectColumns = `id, name, description, refined_prompt, frameworks_languages,
       checklist_steps, cursor_rules_content, created_at, updated_at`

// ProjectRepository provides persistence operations for projects. Every
// operation runs inside its own unit of work.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Tx is an open unit of work.
type Tx struct {
	tx *sql.Tx
}

// WithinUnitOfWork runs fn inside a transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func (r *ProjectRepository) WithinUnitOfWork(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}

// FindByName returns the project with the given name or ErrNotFound.
func (t *Tx) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE name = $1`
	return scanProject(t.tx.QueryRowContext(ctx, q, name))
}

// FindByID returns the project with the given id or ErrNotFound.
func (t *Tx) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(t.tx.QueryRowContext(ctx, q, id))
}

// Insert stores p and fills in its id and timestamps. A name collision
// yields ErrDuplicateName.
func (t *Tx) Insert(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("name required")
	}

	const q = `
INSERT INTO projects (name, description, refined_prompt, frameworks_languages, checklist_steps, cursor_rules_content)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at;
`
	err := t.tx.QueryRowContext(ctx, q,
		p.Name, nullString(p.Description), p.RefinedPrompt,
		p.FrameworksLanguages, p.ChecklistSteps, p.CursorRulesContent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// ListAll returns every project, newest first.
func (t *Tx) ListAll(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	rows, err := t.tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every project, newest first.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := r.WithinUnitOfWork(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.ListAll(ctx)
		return err
	})
	return out, err
}

// FindByID returns the project with the given id or ErrNotFound.
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var out *domain.Project
	err := r.WithinUnitOfWork(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.FindByID(ctx, id)
		return err
	})
	return out, err
}

// FindByName returns the project with the given name or ErrNotFound.
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	var out *domain.Project
	err := r.WithinUnitOfWork(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.FindByName(ctx, name)
		return err
	})
	return out, err
}

// CreateUnique checks the name is free and inserts p in one unit of work.
func (r *ProjectRepository) CreateUnique(ctx context.Context, p *domain.Project) error {
	return r.WithinUnitOfWork(ctx, func(tx *Tx) error {
		_, err := tx.FindByName(ctx, p.Name)
		switch {
		case err == nil:
			return domain.ErrDuplicateName
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return tx.Insert(ctx, p)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p           domain.Project
		description sql.NullString
		refined     sql.NullString
		frameworks  sql.NullString
		checklist   sql.NullString
		rules       sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &refined, &frameworks,
		&checklist, &rules, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Description = description.String
	p.RefinedPrompt = refined.String
	p.FrameworksLanguages = frameworks.String
	p.ChecklistSteps = checklist.String
	p.CursorRulesContent = rules.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
