package service

import (
	"errors"

	"portfolio-cms-be/internal/repository/contract"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownContentKind = contract.ErrUnknownContentKind
	ErrUnknownBulkAction  = errors.New("unknown bulk action")
	ErrNothingSelected    = errors.New("no records selected")
)
