package application

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound                = errors.New("credit application not found")
	ErrInvalidStatus           = errors.New("unknown application status")
	ErrInvalidTransition       = errors.New("application not in a state that allows this transition")
	ErrFinal                   = errors.New("application already in a final state")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrStale                   = errors.New("application status changed concurrently")
	ErrProgramUnavailable      = errors.New("credit program does not exist or is not active")
	ErrInvalidProjectType      = errors.New("unknown project type")
	ErrNotApplicant            = errors.New("only farmers, companies and cooperatives may apply")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// allowed source -> targets
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) IsFinal() bool { return s == StatusApproved || s == StatusRejected }

func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition moves the application to status `to` on behalf of actorID (an
// institution identity). The caller persists the result conditionally on the
// previous status.
func (a *Application) Transition(to Status, actorID, reason string, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if a.Status.IsFinal() {
		return fmt.Errorf("%w: %s", ErrFinal, a.Status)
	}
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	reason = strings.TrimSpace(reason)

	switch to {
	case StatusUnderReview:
		a.ReviewedBy = &actorID
	case StatusApproved:
		if a.ReviewedBy == nil {
			a.ReviewedBy = &actorID
		}
		a.ApprovedBy = &actorID
		a.RejectionReason = nil
	case StatusRejected:
		if reason == "" {
			return ErrRejectionReasonRequired
		}
		if a.ReviewedBy == nil {
			a.ReviewedBy = &actorID
		}
		a.RejectionReason = &reason
		a.ApprovedBy = nil
	}
	a.Status = to
	a.StatusChangedAt = now.UTC()
	return nil
}
