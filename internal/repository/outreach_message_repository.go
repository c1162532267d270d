package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// OutreachMessageFilter captures listing parameters.
type OutreachMessageFilter struct {
	ContactID  *string
	MailItemID *string
}

// OutreachMessageRepository encapsulates outreach message persistence.
// Ownership is enforced through the contact relation.
type OutreachMessageRepository interface {
	Create(ctx context.Context, msg *domain.OutreachMessage) error
	Update(ctx context.Context, ownerID string, msg *domain.OutreachMessage) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.OutreachMessage, error)
	ListWithContact(ctx context.Context, ownerID string, filter OutreachMessageFilter) ([]domain.OutreachMessageWithContact, error)
	ListByContact(ctx context.Context, ownerID, contactID string) ([]domain.OutreachMessage, error)
	ListOverdue(ctx context.Context, ownerID string, now time.Time, limit int) ([]domain.OutreachMessage, error)
	CountOverdue(ctx context.Context, ownerID string, now time.Time) (int64, error)
}

type outreachMessageRepository struct {
	pool *pgxpool.Pool
}

// NewOutreachMessageRepository instantiates repository.
func NewOutreachMessageRepository(pool *pgxpool.Pool) OutreachMessageRepository {
	return &outreachMessageRepository{pool: pool}
}

const messageColumns = `o.id, o.contact_id, o.mail_item_id, o.message_type, o.channel, o.subject_line,
               o.message_content, o.sent_at, o.responded, o.response_date, o.follow_up_needed,
               o.follow_up_date, o.notes`

func (r *outreachMessageRepository) Create(ctx context.Context, msg *domain.OutreachMessage) error {
	const query = `
        INSERT INTO outreach_messages (contact_id, mail_item_id, message_type, channel, subject_line,
                                       message_content, responded, response_date, follow_up_needed,
                                       follow_up_date, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, sent_at`
	return r.pool.QueryRow(ctx, query,
		msg.ContactID,
		msg.MailItemID,
		msg.MessageType,
		msg.Channel,
		msg.SubjectLine,
		msg.MessageContent,
		msg.Responded,
		msg.ResponseDate,
		msg.FollowUpNeeded,
		msg.FollowUpDate,
		msg.Notes,
	).Scan(&msg.ID, &msg.SentAt)
}

func (r *outreachMessageRepository) Update(ctx context.Context, ownerID string, msg *domain.OutreachMessage) error {
	const query = `
        UPDATE outreach_messages o SET responded=$1, response_date=$2, follow_up_needed=$3,
            follow_up_date=$4, notes=$5
        FROM contacts c
        WHERE o.id=$6 AND c.id=o.contact_id AND c.user_id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		msg.Responded,
		msg.ResponseDate,
		msg.FollowUpNeeded,
		msg.FollowUpDate,
		msg.Notes,
		msg.ID,
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

func (r *outreachMessageRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.OutreachMessage, error) {
	query := `SELECT ` + messageColumns + `
        FROM outreach_messages o JOIN contacts c ON c.id = o.contact_id
        WHERE o.id=$1 AND c.user_id=$2`
	var msg domain.OutreachMessage
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&msg.ID,
		&msg.ContactID,
		&msg.MailItemID,
		&msg.MessageType,
		&msg.Channel,
		&msg.SubjectLine,
		&msg.MessageContent,
		&msg.SentAt,
		&msg.Responded,
		&msg.ResponseDate,
		&msg.FollowUpNeeded,
		&msg.FollowUpDate,
		&msg.Notes,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *outreachMessageRepository) ListWithContact(ctx context.Context, ownerID string, filter OutreachMessageFilter) ([]domain.OutreachMessageWithContact, error) {
	base := `SELECT ` + messageColumns + `, c.company_name, c.contact_person, c.unit_number
        FROM outreach_messages o JOIN contacts c ON c.id = o.contact_id`
	clauses := []string{"c.user_id=$1"}
	args := []any{ownerID}

	if filter.ContactID != nil {
		args = append(args, *filter.ContactID)
		clauses = append(clauses, fmt.Sprintf("o.contact_id=$%d", len(args)))
	}
	if filter.MailItemID != nil {
		args = append(args, *filter.MailItemID)
		clauses = append(clauses, fmt.Sprintf("o.mail_item_id=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY o.sent_at DESC", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OutreachMessageWithContact
	for rows.Next() {
		var msg domain.OutreachMessageWithContact
		if err := rows.Scan(
			&msg.ID,
			&msg.ContactID,
			&msg.MailItemID,
			&msg.MessageType,
			&msg.Channel,
			&msg.SubjectLine,
			&msg.MessageContent,
			&msg.SentAt,
			&msg.Responded,
			&msg.ResponseDate,
			&msg.FollowUpNeeded,
			&msg.FollowUpDate,
			&msg.Notes,
			&msg.CompanyName,
			&msg.ContactPerson,
			&msg.UnitNumber,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *outreachMessageRepository) ListByContact(ctx context.Context, ownerID, contactID string) ([]domain.OutreachMessage, error) {
	query := `SELECT ` + messageColumns + `
        FROM outreach_messages o JOIN contacts c ON c.id = o.contact_id
        WHERE c.user_id=$1 AND o.contact_id=$2
        ORDER BY o.sent_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListOverdue returns unresponded messages whose follow-up window has passed,
// most due first.
func (r *outreachMessageRepository) ListOverdue(ctx context.Context, ownerID string, now time.Time, limit int) ([]domain.OutreachMessage, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT `+messageColumns+`
        FROM outreach_messages o JOIN contacts c ON c.id = o.contact_id
        WHERE c.user_id=$1 AND o.follow_up_needed=true AND o.responded=false AND o.follow_up_date < $2
        ORDER BY o.follow_up_date ASC LIMIT %d`, limit)
	rows, err := r.pool.Query(ctx, query, ownerID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *outreachMessageRepository) CountOverdue(ctx context.Context, ownerID string, now time.Time) (int64, error) {
	const query = `SELECT COUNT(*)
        FROM outreach_messages o JOIN contacts c ON c.id = o.contact_id
        WHERE c.user_id=$1 AND o.follow_up_needed=true AND o.responded=false AND o.follow_up_date < $2`
	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerID, now).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanMessages(rows pgx.Rows) ([]domain.OutreachMessage, error) {
	var result []domain.OutreachMessage
	for rows.Next() {
		var msg domain.OutreachMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.ContactID,
			&msg.MailItemID,
			&msg.MessageType,
			&msg.Channel,
			&msg.SubjectLine,
			&msg.MessageContent,
			&msg.SentAt,
			&msg.Responded,
			&msg.ResponseDate,
			&msg.FollowUpNeeded,
			&msg.FollowUpDate,
			&msg.Notes,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
