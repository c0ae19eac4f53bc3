package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrNoRecipients      = errors.New("no recipient emails provided")
	ErrMissingSubject    = errors.New("subject is required")
	ErrMissingBody       = errors.New("body is required")
	ErrSMTPNotConfigured = errors.New("sender email credentials are not configured on the server")
	ErrNotAuthenticated  = errors.New("user not authenticated")
)
