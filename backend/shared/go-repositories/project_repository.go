package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListAll(ctx context.Context) ([]*models.Project, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepo struct {
	db DB
}

func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO projects (
            id, name, linked_property_id, status, completion_date, description,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
    `,
		p.ID, p.Name, p.LinkedPropertyID, p.Status, p.CompletionDate, p.Description,
	)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRow(ctx, baseSelectProject()+" WHERE id=$1", id)
	return scanProject(row)
}

func (r *projectRepo) ListAll(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, baseSelectProject()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProject)
}

func (r *projectRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, `SELECT id FROM projects`)
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	return err
}

func baseSelectProject() string {
	return `
        SELECT
            id, name, linked_property_id, status, completion_date,
            COALESCE(description, ''),
            created_at, updated_at
        FROM projects
    `
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.LinkedPropertyID,
		&p.Status,
		&p.CompletionDate,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
