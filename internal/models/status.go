package models

// Status is the lifecycle state of a feedback or email record. It is a
// closed enumeration: writes that are not in the transition table below are
// rejected instead of accepted as free strings.
type Status string

const (
	StatusNew      Status = "new"
	StatusSent     Status = "sent"
	StatusReplied  Status = "replied"
	StatusResolved Status = "resolved"
	StatusDeleted  Status = "deleted"
)

// feedbackTransitions lists every allowed status change for feedback
// records. "deleted" -> "new" is the admin restore path.
var feedbackTransitions = map[Status][]Status{
	StatusNew:      {StatusReplied, StatusResolved, StatusDeleted},
	StatusReplied:  {StatusResolved, StatusDeleted},
	StatusResolved: {StatusReplied, StatusDeleted},
	StatusDeleted:  {StatusNew},
}

// emailTransitions lists every allowed status change for email records.
// "replied" -> "sent" covers the resend path.
var emailTransitions = map[Status][]Status{
	StatusSent:    {StatusReplied, StatusDeleted},
	StatusReplied: {StatusSent, StatusDeleted},
	StatusDeleted: {StatusSent},
}

func allowed(table map[Status][]Status, from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// FeedbackStatusAllowed reports whether a feedback record may move from
// one status to another. Same-status writes are always allowed.
func FeedbackStatusAllowed(from, to Status) bool {
	return allowed(feedbackTransitions, from, to)
}

// EmailStatusAllowed reports whether an email record may move from one
// status to another.
func EmailStatusAllowed(from, to Status) bool {
	return allowed(emailTransitions, from, to)
}

// ValidFeedbackStatus reports whether s is a status feedback records use.
func ValidFeedbackStatus(s Status) bool {
	switch s {
	case StatusNew, StatusReplied, StatusResolved, StatusDeleted:
		return true
	}
	return false
}

// ValidEmailStatus reports whether s is a status email records use.
func ValidEmailStatus(s Status) bool {
	switch s {
	case StatusSent, StatusReplied, StatusDeleted:
		return true
	}
	return false
}
