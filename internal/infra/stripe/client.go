package stripe

import (
	"os"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// SessionRetriever is the read-only view of Stripe this service needs to
// reconcile a checkout: fetch one session by id. Kept as an interface so the
// resolution core can be tested without network calls.
type SessionRetriever interface {
	GetSession(id string) (*stripe.CheckoutSession, error)
}

// LiveClient talks to the real Stripe API.
type LiveClient struct{}

func NewLiveClient() *LiveClient {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &LiveClient{}
}

func (LiveClient) GetSession(id string) (*stripe.CheckoutSession, error) {
	return checkoutsession.Get(id, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{stripe.String("customer")},
		},
	})
}
