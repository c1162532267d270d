package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// ContactRepository encapsulates contact persistence. Every read and write is
// scoped to the owning user; rows outside that scope behave as absent.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	ReassignAll(ctx context.Context, newOwnerID string) (int64, error)
	ReassignForeign(ctx context.Context, newOwnerID string) (int64, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, user_id, company_name, unit_number, contact_person, language_preference,
               email, phone_number, service_tier, options, mailbox_number, status, created_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (user_id, company_name, unit_number, contact_person, language_preference,
                              email, phone_number, service_tier, options, mailbox_number, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.OwnerID,
		contact.CompanyName,
		contact.UnitNumber,
		contact.ContactPerson,
		contact.LanguagePreference,
		contact.Email,
		contact.PhoneNumber,
		contact.ServiceTier,
		contact.Options,
		contact.MailboxNumber,
		contact.Status,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET company_name=$1, unit_number=$2, contact_person=$3, language_preference=$4,
            email=$5, phone_number=$6, service_tier=$7, options=$8, mailbox_number=$9, status=$10
        WHERE id=$11 AND user_id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		contact.CompanyName,
		contact.UnitNumber,
		contact.ContactPerson,
		contact.LanguagePreference,
		contact.Email,
		contact.PhoneNumber,
		contact.ServiceTier,
		contact.Options,
		contact.MailboxNumber,
		contact.Status,
		contact.ID,
		contact.OwnerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id=$1 AND user_id=$2`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&contact.ID,
		&contact.OwnerID,
		&contact.CompanyName,
		&contact.UnitNumber,
		&contact.ContactPerson,
		&contact.LanguagePreference,
		&contact.Email,
		&contact.PhoneNumber,
		&contact.ServiceTier,
		&contact.Options,
		&contact.MailboxNumber,
		&contact.Status,
		&contact.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.OwnerID,
			&contact.CompanyName,
			&contact.UnitNumber,
			&contact.ContactPerson,
			&contact.LanguagePreference,
			&contact.Email,
			&contact.PhoneNumber,
			&contact.ServiceTier,
			&contact.Options,
			&contact.MailboxNumber,
			&contact.Status,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}

func (r *contactRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM contacts WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM contacts WHERE user_id=$1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ReassignAll moves every contact row to the given owner in one statement.
func (r *contactRepository) ReassignAll(ctx context.Context, newOwnerID string) (int64, error) {
	const query = `UPDATE contacts SET user_id=$1`
	cmd, err := r.pool.Exec(ctx, query, newOwnerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// ReassignForeign moves only rows currently held by other owners.
func (r *contactRepository) ReassignForeign(ctx context.Context, newOwnerID string) (int64, error) {
	const query = `UPDATE contacts SET user_id=$1 WHERE user_id <> $1`
	cmd, err := r.pool.Exec(ctx, query, newOwnerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
