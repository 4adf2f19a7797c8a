package estimate

import "errors"

var (
	ErrUnknownItem   = errors.New("unknown line item")
	ErrNotSizable    = errors.New("line item has no size list")
	ErrNotPromotable = errors.New("line item price cannot be promoted")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownEvent  = errors.New("unknown event type")
)
