package approval

import "errors"

// Store errors
var (
	ErrNotFound     = errors.New("approval request not found")
	ErrDuplicateKey = errors.New("approval request already exists")
)

// Issue and callback errors, mapped to HTTP statuses by the transport layer
var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrMalformedPayload         = errors.New("malformed payload")
	ErrUnsupportedContentType   = errors.New("unsupported content type")
	ErrInvalidSignature         = errors.New("invalid signature")
	ErrUnknownOrAlreadyConsumed = errors.New("unknown or already consumed approval request")
	ErrDeliveryFailed           = errors.New("notification delivery failed")
	ErrDownstreamCallbackFailed = errors.New("downstream callback failed")
)
