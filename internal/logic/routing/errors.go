package routing

import "errors"

var (
	ErrEmptyConfig = errors.New("routing config is empty")
	ErrInvalidRule = errors.New("invalid notification rule")
)
