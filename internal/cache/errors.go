package cache

import "errors"

var (
	ErrUnknownResource = errors.New("unknown cache resource")
	ErrNoPublisher     = errors.New("store has no event publisher")
)
