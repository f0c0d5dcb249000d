package repositories

import (
	"context"

	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

type InquiryRepository interface {
	Create(ctx context.Context, i *models.Inquiry) error
	ListAll(ctx context.Context) ([]*models.Inquiry, error)
}

type inquiryRepo struct {
	db DB
}

func NewInquiryRepository(db DB) InquiryRepository {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) Create(ctx context.Context, i *models.Inquiry) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO inquiries (id, name, email, phone_number, message, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
        RETURNING created_at
    `, i.ID, i.Name, i.Email, i.PhoneNumber, i.Message).Scan(&i.CreatedAt)
}

func (r *inquiryRepo) ListAll(ctx context.Context) ([]*models.Inquiry, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name, email, phone_number, message, created_at
        FROM inquiries
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanInquiry)
}

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	var i models.Inquiry
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.PhoneNumber, &i.Message, &i.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}
