package usecase

import "errors"

var (
	ErrInvalidDeal   = errors.New("invalid deal")
	ErrInvalidRoute  = errors.New("route must not be empty")
	ErrInvalidPrice  = errors.New("price must be a positive number")
	ErrInvalidTarget = errors.New("target price must be a positive number")
)
