package domain

import "errors"

var (
	ErrNoSuggestionAvailable = errors.New("no suggestion available")
	ErrUnknownCategory       = errors.New("unknown playbook category")
	ErrEntryNotFound         = errors.New("playbook entry not found")
	ErrEmptyMessage          = errors.New("message is empty")
	ErrSecretNotFound        = errors.New("secret not found")
)
