package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// CheckoutRequest is what the hosted checkout needs to take one entry fee.
type CheckoutRequest struct {
	Reference   string
	Email       string
	Description string
	AmountCents int
}

type CheckoutSession struct {
	ID          string
	URL         string
	Paid        bool
	AmountCents int
	Reference   string
}

// CheckoutService hands registrants off to a hosted payment page.
type CheckoutService interface {
	Create(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	Get(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// Stripe accepts checkout session lifetimes between these bounds.
const (
	minCheckoutExpiry = 30 * time.Minute
	maxCheckoutExpiry = 24 * time.Hour
)

// CheckoutExpiry clamps d into the lifetime Stripe accepts for a checkout
// session. Zero means no explicit expiry and maps to Stripe's 24h default.
func CheckoutExpiry(d time.Duration) time.Duration {
	if d <= 0 {
		return maxCheckoutExpiry
	}
	return min(max(d, minCheckoutExpiry), maxCheckoutExpiry)
}

type StripeCheckoutConfig struct {
	SecretKey string
	// SuccessURL may contain {CHECKOUT_SESSION_ID}; Stripe fills it in.
	SuccessURL string
	CancelURL  string
	Currency   string
	// ExpiresAfter bounds how long a session stays payable. It is clamped
	// with CheckoutExpiry.
	ExpiresAfter time.Duration
}

type stripeCheckout struct {
	api        *client.API
	successURL string
	cancelURL  string
	currency   string
	expiry     time.Duration
	now        func() time.Time
}

func NewStripeCheckout(cfg StripeCheckoutConfig) (CheckoutService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrCheckoutUnavailable
	}
	if cfg.SuccessURL == "" || cfg.CancelURL == "" {
		return nil, fmt.Errorf("stripe checkout needs success and cancel URLs: %w", ErrCheckoutUnavailable)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeCheckout{
		api:        api,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		currency:   currency,
		expiry:     CheckoutExpiry(cfg.ExpiresAfter),
		now:        time.Now,
	}, nil
}

func (s *stripeCheckout) Create(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.Email),
		ClientReferenceID:  stripe.String(req.Reference),
		SuccessURL:         stripe.String(withReference(s.successURL, req.Reference)),
		CancelURL:          stripe.String(withReference(s.cancelURL, req.Reference)),
		ExpiresAt:          stripe.Int64(s.now().Add(s.expiry).Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(int64(req.AmountCents)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("registration_id", req.Reference)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return toCheckoutSession(sess), nil
}

func (s *stripeCheckout) Get(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := s.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("get checkout session %s: %w", sessionID, err)
	}
	return toCheckoutSession(sess), nil
}

func toCheckoutSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:          sess.ID,
		URL:         sess.URL,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountCents: int(sess.AmountTotal),
		Reference:   sess.ClientReferenceID,
	}
}

// withReference replaces {REGISTRATION_ID} in a redirect URL template.
func withReference(raw, ref string) string {
	return strings.ReplaceAll(raw, "{REGISTRATION_ID}", url.PathEscape(ref))
}
