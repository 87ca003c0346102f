package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrForbidden will throw if the caller's role may not perform the action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the operation is not valid for the current round
	ErrInvalidState = errors.New("invalid state")
	// ErrExpired means the round deadline has passed
	ErrExpired = errors.New("expired")
	// ErrRuleViolation means a bid broke an auction rule
	ErrRuleViolation = errors.New("rule violation")
	// ErrPersistenceFailure means a durable read or write failed
	ErrPersistenceFailure = errors.New("persistence failure")
)
