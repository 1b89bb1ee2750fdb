package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zidalco/zidalco-backend/internal/models"
	"github.com/zidalco/zidalco-backend/internal/query"
)

// Table names accepted by the dispatcher.
const (
	TableFeedback        = "feedback"
	TableEmails          = "emails"
	TableContents        = "contents"
	TableFeedbackReplies = "feedback_replies"
	TableEmailReplies    = "email_replies"
)

// Verbs accepted by the dispatcher.
const (
	VerbSelect = "select"
	VerbInsert = "insert"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// Request describes one storage operation: a table, a verb and an already
// parsed query. Payload carries the record or patch for insert/update.
type Request struct {
	Table   string
	Verb    string
	Query   query.Query
	Payload any
}

// Response carries the outcome. Status is an HTTP status code and Data the
// affected rows, PostgREST style: selects return matching rows, inserts the
// created row, updates the patched rows, count queries [{"count": n}].
type Response struct {
	Status int
	Data   []any
}

// Dispatcher routes requests onto the backend chosen at startup. It applies
// the rules shared by every table: updates and deletes need an id filter,
// except the bulk mark-as-read update which matches is_read=eq.false.
type Dispatcher struct {
	backend Backend
}

func NewDispatcher(b Backend) *Dispatcher { return &Dispatcher{backend: b} }

// Backend exposes the underlying store for health checks and shutdown.
func (d *Dispatcher) Backend() Backend { return d.backend }

// Do executes one request. The returned error is already reflected in
// Response.Status; callers branch on the status, not the error.
func (d *Dispatcher) Do(ctx context.Context, req Request) (Response, error) {
	var (
		data []any
		err  error
	)

	switch req.Table {
	case TableFeedback:
		data, err = d.feedback(ctx, req)
	case TableEmails:
		data, err = d.emails(ctx, req)
	case TableContents:
		data, err = d.contents(ctx, req)
	case TableFeedbackReplies:
		data, err = d.feedbackReplies(ctx, req)
	case TableEmailReplies:
		data, err = d.emailReplies(ctx, req)
	default:
		return Response{Status: http.StatusBadRequest}, fmt.Errorf("unknown table %q", req.Table)
	}

	if err != nil {
		return Response{Status: statusFor(err)}, err
	}
	return Response{Status: statusForVerb(req.Verb), Data: data}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForVerb(verb string) int {
	if verb == VerbInsert {
		return http.StatusCreated
	}
	return http.StatusOK
}

var errBadRequest = errors.New("bad request")

func countRow(n int) []any {
	return []any{map[string]int{"count": n}}
}

// updateTarget classifies an update request: by id, or the bulk
// mark-as-read form (is_read=eq.false with no id).
func updateTarget(q query.Query) (id string, markAll bool, err error) {
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		return f.Value, false, nil
	}
	if f, ok := q.Get("is_read"); ok && f.Op == query.OpEq && f.Value == "false" {
		return "", true, nil
	}
	return "", false, fmt.Errorf("%w: update requires an id filter", errBadRequest)
}

func deleteTarget(q query.Query) (string, error) {
	if f, ok := q.Get("id"); ok && f.Op == query.OpEq {
		return f.Value, nil
	}
	return "", fmt.Errorf("%w: delete requires an id filter", errBadRequest)
}

func (d *Dispatcher) feedback(ctx context.Context, req Request) ([]any, error) {
	switch req.Verb {
	case VerbSelect:
		if req.Query.CountOnly {
			n, err := d.backend.CountFeedback(ctx, req.Query)
			if err != nil {
				return nil, err
			}
			return countRow(n), nil
		}
		list, err := d.backend.ListFeedback(ctx, req.Query)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, f := range list {
			out[i] = f
		}
		return out, nil

	case VerbInsert:
		f, ok := req.Payload.(models.Feedback)
		if !ok {
			return nil, fmt.Errorf("%w: feedback insert payload", errBadRequest)
		}
		created, err := d.backend.AddFeedback(ctx, f)
		if err != nil {
			return nil, err
		}
		return []any{created}, nil

	case VerbUpdate:
		id, markAll, err := updateTarget(req.Query)
		if err != nil {
			return nil, err
		}
		if markAll {
			n, err := d.backend.MarkAllFeedbackRead(ctx)
			if err != nil {
				return nil, err
			}
			return countRow(n), nil
		}
		patch, ok := req.Payload.(models.FeedbackPatch)
		if !ok {
			return nil, fmt.Errorf("%w: feedback update payload", errBadRequest)
		}
		updated, err := d.backend.UpdateFeedback(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		return []any{updated}, nil

	case VerbDelete:
		id, err := deleteTarget(req.Query)
		if err != nil {
			return nil, err
		}
		if err := d.backend.DeleteFeedback(ctx, id); err != nil {
			return nil, err
		}
		return []any{}, nil
	}
	return nil, fmt.Errorf("%w: unknown verb %q", errBadRequest, req.Verb)
}

func (d *Dispatcher) emails(ctx context.Context, req Request) ([]any, error) {
	switch req.Verb {
	case VerbSelect:
		if req.Query.CountOnly {
			n, err := d.backend.CountEmails(ctx, req.Query)
			if err != nil {
				return nil, err
			}
			return countRow(n), nil
		}
		list, err := d.backend.ListEmails(ctx, req.Query)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, e := range list {
			out[i] = e
		}
		return out, nil

	case VerbInsert:
		e, ok := req.Payload.(models.Email)
		if !ok {
			return nil, fmt.Errorf("%w: email insert payload", errBadRequest)
		}
		created, err := d.backend.AddEmail(ctx, e)
		if err != nil {
			return nil, err
		}
		return []any{created}, nil

	case VerbUpdate:
		id, markAll, err := updateTarget(req.Query)
		if err != nil {
			return nil, err
		}
		if markAll {
			n, err := d.backend.MarkAllEmailsRead(ctx)
			if err != nil {
				return nil, err
			}
			return countRow(n), nil
		}
		patch, ok := req.Payload.(models.EmailPatch)
		if !ok {
			return nil, fmt.Errorf("%w: email update payload", errBadRequest)
		}
		updated, err := d.backend.UpdateEmail(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		return []any{updated}, nil

	case VerbDelete:
		id, err := deleteTarget(req.Query)
		if err != nil {
			return nil, err
		}
		if err := d.backend.DeleteEmail(ctx, id); err != nil {
			return nil, err
		}
		return []any{}, nil
	}
	return nil, fmt.Errorf("%w: unknown verb %q", errBadRequest, req.Verb)
}

func (d *Dispatcher) contents(ctx context.Context, req Request) ([]any, error) {
	switch req.Verb {
	case VerbSelect:
		if req.Query.CountOnly {
			n, err := d.backend.CountContent(ctx, req.Query)
			if err != nil {
				return nil, err
			}
			return countRow(n), nil
		}
		list, err := d.backend.ListContent(ctx, req.Query)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, c := range list {
			out[i] = c
		}
		return out, nil

	case VerbInsert:
		c, ok := req.Payload.(models.Content)
		if !ok {
			return nil, fmt.Errorf("%w: content insert payload", errBadRequest)
		}
		created, err := d.backend.AddContent(ctx, c)
		if err != nil {
			return nil, err
		}
		return []any{created}, nil

	case VerbUpdate:
		id, _, err := updateTarget(req.Query)
		if err != nil || id == "" {
			return nil, fmt.Errorf("%w: content update requires an id filter", errBadRequest)
		}
		patch, ok := req.Payload.(models.ContentPatch)
		if !ok {
			return nil, fmt.Errorf("%w: content update payload", errBadRequest)
		}
		updated, err := d.backend.UpdateContent(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		return []any{updated}, nil

	case VerbDelete:
		id, err := deleteTarget(req.Query)
		if err != nil {
			return nil, err
		}
		if err := d.backend.DeleteContent(ctx, id); err != nil {
			return nil, err
		}
		return []any{}, nil
	}
	return nil, fmt.Errorf("%w: unknown verb %q", errBadRequest, req.Verb)
}

func (d *Dispatcher) feedbackReplies(ctx context.Context, req Request) ([]any, error) {
	switch req.Verb {
	case VerbSelect:
		f, ok := req.Query.Get("feedback_id")
		if !ok || f.Op != query.OpEq {
			return nil, fmt.Errorf("%w: reply select requires a feedback_id filter", errBadRequest)
		}
		list, err := d.backend.ListFeedbackReplies(ctx, f.Value)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, r := range list {
			out[i] = r
		}
		return out, nil

	case VerbInsert:
		r, ok := req.Payload.(models.FeedbackReply)
		if !ok {
			return nil, fmt.Errorf("%w: feedback reply payload", errBadRequest)
		}
		created, err := d.backend.AddFeedbackReply(ctx, r)
		if err != nil {
			return nil, err
		}
		return []any{created}, nil
	}
	return nil, fmt.Errorf("%w: unsupported verb %q for feedback_replies", errBadRequest, req.Verb)
}

func (d *Dispatcher) emailReplies(ctx context.Context, req Request) ([]any, error) {
	switch req.Verb {
	case VerbSelect:
		f, ok := req.Query.Get("email_id")
		if !ok || f.Op != query.OpEq {
			return nil, fmt.Errorf("%w: reply select requires an email_id filter", errBadRequest)
		}
		list, err := d.backend.ListEmailReplies(ctx, f.Value)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, r := range list {
			out[i] = r
		}
		return out, nil

	case VerbInsert:
		r, ok := req.Payload.(models.EmailReply)
		if !ok {
			return nil, fmt.Errorf("%w: email reply payload", errBadRequest)
		}
		created, err := d.backend.AddEmailReply(ctx, r)
		if err != nil {
			return nil, err
		}
		return []any{created}, nil
	}
	return nil, fmt.Errorf("%w: unsupported verb %q for email_replies", errBadRequest, req.Verb)
}
