package checkout

import "errors"

var (
	ErrNoArtifacts     = errors.New("no artifacts provided")
	ErrInvalidArtifact = errors.New("invalid artifact reference")

	ErrPaymentSession = errors.New("payment session request failed")
)
