package store

import (
	"context"
	"database/sql"
	"log"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
)

// psql builds statements with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PgStore implements Backend on PostgreSQL. It is selected at startup when
// DATABASE_URL is set, mock mode is off, and the initial ping succeeds.
type PgStore struct {
	db *sql.DB
}

// OpenPostgres connects to PostgreSQL, verifies the connection and makes
// sure all tables exist.
func OpenPostgres(databaseURL string) (*PgStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &PgStore{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Connected to PostgreSQL")
	return s, nil
}

// NewPgStore wraps an existing connection; used by tests with sqlmock.
func NewPgStore(db *sql.DB) *PgStore { return &PgStore{db: db} }

func (s *PgStore) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(40) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			message TEXT NOT NULL,
			type VARCHAR(50) NOT NULL DEFAULT 'general',
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			is_read BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS emails (
			id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(40) NOT NULL,
			updated_at VARCHAR(40),
			sender_name VARCHAR(255) NOT NULL,
			sender_email VARCHAR(255) NOT NULL,
			sender_phone VARCHAR(50),
			message TEXT NOT NULL,
			recipient_email VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'sent',
			is_read BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS contents (
			id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(40) NOT NULL,
			location VARCHAR(100) NOT NULL,
			slot VARCHAR(100) NOT NULL,
			title VARCHAR(255),
			body TEXT,
			image_url TEXT,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS feedback_replies (
			id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(40) NOT NULL,
			feedback_id VARCHAR(64) NOT NULL,
			reply_message TEXT NOT NULL,
			admin_name VARCHAR(255) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS email_replies (
			id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(40) NOT NULL,
			email_id VARCHAR(64) NOT NULL,
			admin_id VARCHAR(64),
			admin_name VARCHAR(255) NOT NULL,
			reply_message TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_feedback_status ON feedback(status)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_emails_status ON emails(status)`,
		`CREATE INDEX IF NOT EXISTS idx_emails_created_at ON emails(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_location_slot ON contents(location, slot)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_replies_feedback_id ON feedback_replies(feedback_id)`,
		`CREATE INDEX IF NOT EXISTS idx_email_replies_email_id ON email_replies(email_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Ping reports connectivity.
func (s *PgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the connection pool.
func (s *PgStore) Close() error { return s.db.Close() }

// applyFilters translates the typed query onto a squirrel SELECT. The
// status default (exclude "deleted") mirrors the file store; fields not in
// allowed are ignored rather than rejected.
func applyFilters(b sq.SelectBuilder, q query.Query, allowed map[string]bool, statusDefault bool) sq.SelectBuilder {
	if statusDefault && !q.Has("status") {
		b = b.Where(sq.NotEq{"status": string(models.StatusDeleted)})
	}
	for _, f := range q.Filters {
		if !allowed[f.Field] {
			continue
		}
		val := filterValue(f)
		if f.Op == query.OpNeq {
			b = b.Where(sq.NotEq{f.Field: val})
		} else {
			b = b.Where(sq.Eq{f.Field: val})
		}
	}
	return b
}

func pageLimit(q query.Query) uint64 {
	if q.Limit <= 0 {
		return query.DefaultLimit
	}
	return uint64(q.Limit)
}

// filterValue converts boolean-ish filter values for boolean columns.
func filterValue(f query.Filter) any {
	switch f.Field {
	case "is_read", "is_published", "is_deleted":
		v, err := strconv.ParseBool(f.Value)
		if err != nil {
			return false
		}
		return v
	default:
		return f.Value
	}
}

var feedbackFields = map[string]bool{
	"id": true, "status": true, "type": true, "email": true, "is_read": true,
}

var emailFields = map[string]bool{
	"id": true, "status": true, "sender_email": true, "recipient_email": true, "is_read": true,
}

var contentFields = map[string]bool{
	"id": true, "location": true, "slot": true, "is_published": true, "is_deleted": true,
}

// ── Feedback ──

const feedbackColumns = "id, created_at, name, email, phone, message, type, status, is_read"

func scanFeedback(rows *sql.Rows) (models.Feedback, error) {
	var f models.Feedback
	var phone sql.NullString
	err := rows.Scan(&f.ID, &f.CreatedAt, &f.Name, &f.Email, &phone, &f.Message, &f.Type, &f.Status, &f.IsRead)
	f.Phone = phone.String
	return f, err
}

func (s *PgStore) AddFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	f.ID = newID()
	if f.CreatedAt == "" {
		f.CreatedAt = nowISO()
	}
	sqlStr, args, err := psql.Insert("feedback").
		Columns("id", "created_at", "name", "email", "phone", "message", "type", "status", "is_read").
		Values(f.ID, f.CreatedAt, f.Name, f.Email, f.Phone, f.Message, f.Type, string(f.Status), f.IsRead).
		ToSql()
	if err != nil {
		return models.Feedback{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

func (s *PgStore) ListFeedback(ctx context.Context, q query.Query) ([]models.Feedback, error) {
	b := psql.Select(feedbackColumns).From("feedback")
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		b = psql.Select(feedbackColumns).From("feedback").Where(sq.Eq{"id": f.Value}).Limit(1)
	} else {
		b = applyFilters(b, q, feedbackFields, true).
			OrderBy("created_at DESC").
			Limit(pageLimit(q)).
			Offset(uint64(q.Offset))
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PgStore) CountFeedback(ctx context.Context, q query.Query) (int, error) {
	b := applyFilters(psql.Select("COUNT(*)").From("feedback"), q, feedbackFields, true)
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PgStore) UpdateFeedback(ctx context.Context, id string, patch models.FeedbackPatch) (models.Feedback, error) {
	cur, err := s.getFeedback(ctx, id)
	if err != nil {
		return models.Feedback{}, err
	}

	b := psql.Update("feedback").Where(sq.Eq{"id": id})
	changed := false
	if patch.Status != nil {
		if !models.ValidFeedbackStatus(*patch.Status) {
			return models.Feedback{}, ErrInvalidStatus
		}
		if !models.FeedbackStatusAllowed(cur.Status, *patch.Status) {
			return models.Feedback{}, ErrInvalidTransition
		}
		b = b.Set("status", string(*patch.Status))
		cur.Status = *patch.Status
		changed = true
	}
	if patch.IsRead != nil {
		b = b.Set("is_read", *patch.IsRead)
		cur.IsRead = *patch.IsRead
		changed = true
	}
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
		cur.Name = *patch.Name
		changed = true
	}
	if patch.Email != nil {
		b = b.Set("email", *patch.Email)
		cur.Email = *patch.Email
		changed = true
	}
	if patch.Phone != nil {
		b = b.Set("phone", *patch.Phone)
		cur.Phone = *patch.Phone
		changed = true
	}
	if !changed {
		return cur, nil
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return models.Feedback{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Feedback{}, err
	}
	return cur, nil
}

func (s *PgStore) getFeedback(ctx context.Context, id string) (models.Feedback, error) {
	list, err := s.ListFeedback(ctx, query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1})
	if err != nil {
		return models.Feedback{}, err
	}
	if len(list) == 0 {
		return models.Feedback{}, ErrNotFound
	}
	return list[0], nil
}

func (s *PgStore) MarkAllFeedbackRead(ctx context.Context) (int, error) {
	sqlStr, args, err := psql.Update("feedback").Set("is_read", true).Where(sq.Eq{"is_read": false}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *PgStore) DeleteFeedback(ctx context.Context, id string) error {
	sqlStr, args, err := psql.Delete("feedback").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) AddFeedbackReply(ctx context.Context, r models.FeedbackReply) (models.FeedbackReply, error) {
	r.ID = newID()
	if r.CreatedAt == "" {
		r.CreatedAt = nowISO()
	}
	sqlStr, args, err := psql.Insert("feedback_replies").
		Columns("id", "created_at", "feedback_id", "reply_message", "admin_name").
		Values(r.ID, r.CreatedAt, r.FeedbackID, r.ReplyMessage, r.AdminName).
		ToSql()
	if err != nil {
		return models.FeedbackReply{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.FeedbackReply{}, err
	}
	return r, nil
}

func (s *PgStore) ListFeedbackReplies(ctx context.Context, feedbackID string) ([]models.FeedbackReply, error) {
	sqlStr, args, err := psql.Select("id", "created_at", "feedback_id", "reply_message", "admin_name").
		From("feedback_replies").
		Where(sq.Eq{"feedback_id": feedbackID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FeedbackReply, 0)
	for rows.Next() {
		var r models.FeedbackReply
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.FeedbackID, &r.ReplyMessage, &r.AdminName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ── Emails ──

const emailColumns = "id, created_at, updated_at, sender_name, sender_email, sender_phone, message, recipient_email, status, is_read"

func scanEmail(rows *sql.Rows) (models.Email, error) {
	var e models.Email
	var updated, phone sql.NullString
	err := rows.Scan(&e.ID, &e.CreatedAt, &updated, &e.SenderName, &e.SenderEmail, &phone, &e.Message, &e.RecipientEmail, &e.Status, &e.IsRead)
	e.UpdatedAt = updated.String
	e.SenderPhone = phone.String
	return e, err
}

func (s *PgStore) AddEmail(ctx context.Context, e models.Email) (models.Email, error) {
	e.ID = newID()
	if e.CreatedAt == "" {
		e.CreatedAt = nowISO()
	}
	sqlStr, args, err := psql.Insert("emails").
		Columns("id", "created_at", "sender_name", "sender_email", "sender_phone", "message", "recipient_email", "status", "is_read").
		Values(e.ID, e.CreatedAt, e.SenderName, e.SenderEmail, e.SenderPhone, e.Message, e.RecipientEmail, string(e.Status), e.IsRead).
		ToSql()
	if err != nil {
		return models.Email{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Email{}, err
	}
	return e, nil
}

func (s *PgStore) ListEmails(ctx context.Context, q query.Query) ([]models.Email, error) {
	var b sq.SelectBuilder
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		b = psql.Select(emailColumns).From("emails").Where(sq.Eq{"id": f.Value}).Limit(1)
	} else {
		b = applyFilters(psql.Select(emailColumns).From("emails"), q, emailFields, true).
			OrderBy("created_at DESC").
			Limit(pageLimit(q)).
			Offset(uint64(q.Offset))
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Email, 0)
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PgStore) CountEmails(ctx context.Context, q query.Query) (int, error) {
	b := applyFilters(psql.Select("COUNT(*)").From("emails"), q, emailFields, true)
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PgStore) UpdateEmail(ctx context.Context, id string, patch models.EmailPatch) (models.Email, error) {
	cur, err := s.getEmail(ctx, id)
	if err != nil {
		return models.Email{}, err
	}

	b := psql.Update("emails").Where(sq.Eq{"id": id})
	changed := false
	if patch.Status != nil {
		if !models.ValidEmailStatus(*patch.Status) {
			return models.Email{}, ErrInvalidStatus
		}
		if !models.EmailStatusAllowed(cur.Status, *patch.Status) {
			return models.Email{}, ErrInvalidTransition
		}
		b = b.Set("status", string(*patch.Status))
		cur.Status = *patch.Status
		changed = true
	}
	if patch.IsRead != nil {
		b = b.Set("is_read", *patch.IsRead)
		cur.IsRead = *patch.IsRead
		changed = true
	}
	if patch.UpdatedAt != nil {
		b = b.Set("updated_at", *patch.UpdatedAt)
		cur.UpdatedAt = *patch.UpdatedAt
		changed = true
	}
	if !changed {
		return cur, nil
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return models.Email{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Email{}, err
	}
	return cur, nil
}

func (s *PgStore) getEmail(ctx context.Context, id string) (models.Email, error) {
	list, err := s.ListEmails(ctx, query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1})
	if err != nil {
		return models.Email{}, err
	}
	if len(list) == 0 {
		return models.Email{}, ErrNotFound
	}
	return list[0], nil
}

func (s *PgStore) MarkAllEmailsRead(ctx context.Context) (int, error) {
	sqlStr, args, err := psql.Update("emails").Set("is_read", true).Where(sq.Eq{"is_read": false}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *PgStore) DeleteEmail(ctx context.Context, id string) error {
	sqlStr, args, err := psql.Delete("emails").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) AddEmailReply(ctx context.Context, r models.EmailReply) (models.EmailReply, error) {
	r.ID = newID()
	if r.CreatedAt == "" {
		r.CreatedAt = nowISO()
	}
	sqlStr, args, err := psql.Insert("email_replies").
		Columns("id", "created_at", "email_id", "admin_id", "admin_name", "reply_message").
		Values(r.ID, r.CreatedAt, r.EmailID, r.AdminID, r.AdminName, r.ReplyMessage).
		ToSql()
	if err != nil {
		return models.EmailReply{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.EmailReply{}, err
	}
	return r, nil
}

func (s *PgStore) ListEmailReplies(ctx context.Context, emailID string) ([]models.EmailReply, error) {
	sqlStr, args, err := psql.Select("id", "created_at", "email_id", "admin_id", "admin_name", "reply_message").
		From("email_replies").
		Where(sq.Eq{"email_id": emailID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EmailReply, 0)
	for rows.Next() {
		var r models.EmailReply
		var adminID sql.NullString
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.EmailID, &adminID, &r.AdminName, &r.ReplyMessage); err != nil {
			return nil, err
		}
		r.AdminID = adminID.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// ── Content ──

const contentColumns = "id, created_at, location, slot, title, body, image_url, is_published, is_deleted"

func scanContent(rows *sql.Rows) (models.Content, error) {
	var c models.Content
	var title, body, img sql.NullString
	err := rows.Scan(&c.ID, &c.CreatedAt, &c.Location, &c.Slot, &title, &body, &img, &c.IsPublished, &c.IsDeleted)
	c.Title = title.String
	c.Body = body.String
	c.ImageURL = img.String
	return c, err
}

func (s *PgStore) AddContent(ctx context.Context, c models.Content) (models.Content, error) {
	c.ID = newID()
	if c.CreatedAt == "" {
		c.CreatedAt = nowISO()
	}
	sqlStr, args, err := psql.Insert("contents").
		Columns("id", "created_at", "location", "slot", "title", "body", "image_url", "is_published", "is_deleted").
		Values(c.ID, c.CreatedAt, c.Location, c.Slot, c.Title, c.Body, c.ImageURL, c.IsPublished, c.IsDeleted).
		ToSql()
	if err != nil {
		return models.Content{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

func (s *PgStore) ListContent(ctx context.Context, q query.Query) ([]models.Content, error) {
	var b sq.SelectBuilder
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		b = psql.Select(contentColumns).From("contents").Where(sq.Eq{"id": f.Value}).Limit(1)
	} else {
		b = psql.Select(contentColumns).From("contents")
		if !q.Has("is_deleted") {
			b = b.Where(sq.Eq{"is_deleted": false})
		}
		b = applyFilters(b, q, contentFields, false).
			OrderBy("created_at DESC").
			Limit(pageLimit(q)).
			Offset(uint64(q.Offset))
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgStore) CountContent(ctx context.Context, q query.Query) (int, error) {
	b := psql.Select("COUNT(*)").From("contents")
	if !q.Has("is_deleted") {
		b = b.Where(sq.Eq{"is_deleted": false})
	}
	b = applyFilters(b, q, contentFields, false)
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PgStore) UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (models.Content, error) {
	cur, err := s.getContent(ctx, id)
	if err != nil {
		return models.Content{}, err
	}

	b := psql.Update("contents").Where(sq.Eq{"id": id})
	changed := false
	set := func(col string, val any) {
		b = b.Set(col, val)
		changed = true
	}
	if patch.Location != nil {
		set("location", *patch.Location)
		cur.Location = *patch.Location
	}
	if patch.Slot != nil {
		set("slot", *patch.Slot)
		cur.Slot = *patch.Slot
	}
	if patch.Title != nil {
		set("title", *patch.Title)
		cur.Title = *patch.Title
	}
	if patch.Body != nil {
		set("body", *patch.Body)
		cur.Body = *patch.Body
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
		cur.ImageURL = *patch.ImageURL
	}
	if patch.IsPublished != nil {
		set("is_published", *patch.IsPublished)
		cur.IsPublished = *patch.IsPublished
	}
	if patch.IsDeleted != nil {
		set("is_deleted", *patch.IsDeleted)
		cur.IsDeleted = *patch.IsDeleted
	}
	if !changed {
		return cur, nil
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return models.Content{}, err
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return models.Content{}, err
	}
	return cur, nil
}

func (s *PgStore) getContent(ctx context.Context, id string) (models.Content, error) {
	list, err := s.ListContent(ctx, query.Query{Filters: []query.Filter{query.Eq("id", id)}, Limit: 1})
	if err != nil {
		return models.Content{}, err
	}
	if len(list) == 0 {
		return models.Content{}, ErrNotFound
	}
	return list[0], nil
}

func (s *PgStore) DeleteContent(ctx context.Context, id string) error {
	sqlStr, args, err := psql.Update("contents").
		Set("is_deleted", true).
		Set("is_published", false).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
