package domain

import "errors"

var (
	ErrAlreadyVoted       = errors.New("this device has already voted, only one vote per device is allowed")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrForbidden          = errors.New("access denied, only administrators can perform this action")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInternal           = errors.New("internal server error")
)
