package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// TemplateRepository encapsulates message template persistence. Shared default
// templates have a NULL owner and are visible to everyone.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.MessageTemplate) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error)
	ListVisible(ctx context.Context, ownerID string) ([]domain.MessageTemplate, error)
}

type templateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository instantiates repository.
func NewTemplateRepository(pool *pgxpool.Pool) TemplateRepository {
	return &templateRepository{pool: pool}
}

const templateColumns = `id, user_id, template_name, template_type, subject_line, message_body,
               default_channel, is_default, created_at`

func (r *templateRepository) Create(ctx context.Context, tpl *domain.MessageTemplate) error {
	const query = `
        INSERT INTO message_templates (user_id, template_name, template_type, subject_line,
                                       message_body, default_channel, is_default)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		tpl.OwnerID,
		tpl.TemplateName,
		tpl.TemplateType,
		tpl.SubjectLine,
		tpl.MessageBody,
		tpl.DefaultChannel,
		tpl.IsDefault,
	).Scan(&tpl.ID, &tpl.CreatedAt)
}

func (r *templateRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.MessageTemplate, error) {
	query := `SELECT ` + templateColumns + `
        FROM message_templates WHERE id=$1 AND (user_id=$2 OR is_default=true)`
	var tpl domain.MessageTemplate
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&tpl.ID,
		&tpl.OwnerID,
		&tpl.TemplateName,
		&tpl.TemplateType,
		&tpl.SubjectLine,
		&tpl.MessageBody,
		&tpl.DefaultChannel,
		&tpl.IsDefault,
		&tpl.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ListVisible returns the caller's templates plus the shared defaults,
// defaults first, then alphabetical.
func (r *templateRepository) ListVisible(ctx context.Context, ownerID string) ([]domain.MessageTemplate, error) {
	query := `SELECT ` + templateColumns + `
        FROM message_templates
        WHERE user_id=$1 OR is_default=true
        ORDER BY is_default DESC, template_name ASC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MessageTemplate
	for rows.Next() {
		var tpl domain.MessageTemplate
		if err := rows.Scan(
			&tpl.ID,
			&tpl.OwnerID,
			&tpl.TemplateName,
			&tpl.TemplateType,
			&tpl.SubjectLine,
			&tpl.MessageBody,
			&tpl.DefaultChannel,
			&tpl.IsDefault,
			&tpl.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tpl)
	}
	return result, rows.Err()
}
