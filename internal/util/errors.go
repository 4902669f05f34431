package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrAlreadyCompleted    = errors.New("interview already completed")
	ErrAlreadyScheduled    = errors.New("candidate already scheduled for this campaign")
	ErrRoundHasInstances   = errors.New("round config has live interview instances and cannot be edited")
	ErrTransientPersist    = errors.New("transient persistence failure, retry the request")
	ErrNotInProgress       = errors.New("interview is not in progress")
	ErrRestartCompleted    = errors.New("completed interview cannot be restarted")
)
