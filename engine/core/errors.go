package core

import (
	"errors"
)

var (
	ErrFrameQueueFull  = errors.New("decoded frame queue is full")
	ErrFrameQueueEmpty = errors.New("decoded frame queue is empty")
	ErrUnknown         = errors.New("unknown")
)
