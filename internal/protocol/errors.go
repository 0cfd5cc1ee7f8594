package protocol

import "errors"

var (
	ErrChannelClosed    = errors.New("protocol: channel closed")
	ErrMalformedHeader  = errors.New("protocol: malformed header")
	ErrMalformedPayload = errors.New("protocol: malformed payload")
)
