//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stripe_test
package stripe

import (
	stripesdk "github.com/stripe/stripe-go/v76"
)

type sessionClient interface {
	New(params *stripesdk.CheckoutSessionParams) (*stripesdk.CheckoutSession, error)
}
