package domain

import "errors"

var (
	ErrInvalidProfileInput = errors.New("invalid profile input")
	ErrUnknownSkill        = errors.New("unknown skill reference")
)
