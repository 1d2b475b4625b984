package domain

import "errors"

// ErrSessionNotFound is returned when a session key cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownTopic is returned by topic catalogs when an ID has no record.
var ErrUnknownTopic = errors.New("unknown topic")
