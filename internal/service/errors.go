package service

import "errors"

var (
	ErrUnknownRank        = errors.New("unknown rank")
	ErrInvalidCategory    = errors.New("invalid attendance category")
	ErrNoNextRank         = errors.New("no higher rank")
	ErrNoLowerRank        = errors.New("no lower rank")
	ErrInvalidRequirement = errors.New("invalid rank requirement")
)
