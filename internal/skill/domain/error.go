package domain

import "errors"

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillExists         = errors.New("skill with this name already exists")
	ErrInvalidCategory     = errors.New("invalid skill category")
	ErrInvalidDifficulty   = errors.New("invalid difficulty level")
	ErrSearchQueryRequired = errors.New("search query is required")
	ErrInvalidSkillInput   = errors.New("invalid skill input")
)
