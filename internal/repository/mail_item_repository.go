package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// MailItemFilter captures listing parameters.
type MailItemFilter struct {
	ContactID *string
	Statuses  []domain.MailItemStatus
	Limit     int
}

// MailItemRepository encapsulates mail item persistence. Ownership is enforced
// through the contact relation: items for contacts owned by other users are
// invisible.
type MailItemRepository interface {
	Create(ctx context.Context, item *domain.MailItem) error
	Update(ctx context.Context, ownerID string, item *domain.MailItem) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.MailItem, error)
	ListWithFilter(ctx context.Context, ownerID string, filter MailItemFilter) ([]domain.MailItem, error)
	ListRecentWithContact(ctx context.Context, ownerID string, limit int) ([]domain.MailItemWithContact, error)
	CountByStatuses(ctx context.Context, ownerID string, statuses []domain.MailItemStatus) (int64, error)
}

type mailItemRepository struct {
	pool *pgxpool.Pool
}

// NewMailItemRepository instantiates repository.
func NewMailItemRepository(pool *pgxpool.Pool) MailItemRepository {
	return &mailItemRepository{pool: pool}
}

const mailItemColumns = `m.id, m.contact_id, m.item_type, m.description, m.received_date, m.status,
               m.pickup_date, m.created_at`

func (r *mailItemRepository) Create(ctx context.Context, item *domain.MailItem) error {
	const query = `
        INSERT INTO mail_items (contact_id, item_type, description, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, received_date, created_at`
	return r.pool.QueryRow(ctx, query,
		item.ContactID,
		item.ItemType,
		item.Description,
		item.Status,
	).Scan(&item.ID, &item.ReceivedDate, &item.CreatedAt)
}

func (r *mailItemRepository) Update(ctx context.Context, ownerID string, item *domain.MailItem) error {
	const query = `
        UPDATE mail_items m SET status=$1, pickup_date=$2
        FROM contacts c
        WHERE m.id=$3 AND c.id=m.contact_id AND c.user_id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		item.Status,
		item.PickupDate,
		item.ID,
		ownerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mailItemRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.MailItem, error) {
	query := `SELECT ` + mailItemColumns + `
        FROM mail_items m JOIN contacts c ON c.id = m.contact_id
        WHERE m.id=$1 AND c.user_id=$2`
	var item domain.MailItem
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&item.ID,
		&item.ContactID,
		&item.ItemType,
		&item.Description,
		&item.ReceivedDate,
		&item.Status,
		&item.PickupDate,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mailItemRepository) ListWithFilter(ctx context.Context, ownerID string, filter MailItemFilter) ([]domain.MailItem, error) {
	base := `SELECT ` + mailItemColumns + `
        FROM mail_items m JOIN contacts c ON c.id = m.contact_id`
	clauses := []string{"c.user_id=$1"}
	args := []any{ownerID}

	if filter.ContactID != nil {
		args = append(args, *filter.ContactID)
		clauses = append(clauses, fmt.Sprintf("m.contact_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("m.status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY m.received_date DESC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMailItems(rows)
}

func (r *mailItemRepository) ListRecentWithContact(ctx context.Context, ownerID string, limit int) ([]domain.MailItemWithContact, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT `+mailItemColumns+`,
               c.company_name, c.contact_person, c.unit_number, c.mailbox_number
        FROM mail_items m JOIN contacts c ON c.id = m.contact_id
        WHERE c.user_id=$1
        ORDER BY m.received_date DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MailItemWithContact
	for rows.Next() {
		var item domain.MailItemWithContact
		if err := rows.Scan(
			&item.ID,
			&item.ContactID,
			&item.ItemType,
			&item.Description,
			&item.ReceivedDate,
			&item.Status,
			&item.PickupDate,
			&item.CreatedAt,
			&item.CompanyName,
			&item.ContactPerson,
			&item.UnitNumber,
			&item.MailboxNumber,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *mailItemRepository) CountByStatuses(ctx context.Context, ownerID string, statuses []domain.MailItemStatus) (int64, error) {
	args := []any{ownerID}
	placeholders := make([]string, len(statuses))
	for i, status := range statuses {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(`SELECT COUNT(*)
        FROM mail_items m JOIN contacts c ON c.id = m.contact_id
        WHERE c.user_id=$1 AND m.status IN (%s)`, strings.Join(placeholders, ","))

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanMailItems(rows pgx.Rows) ([]domain.MailItem, error) {
	var result []domain.MailItem
	for rows.Next() {
		var item domain.MailItem
		if err := rows.Scan(
			&item.ID,
			&item.ContactID,
			&item.ItemType,
			&item.Description,
			&item.ReceivedDate,
			&item.Status,
			&item.PickupDate,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
