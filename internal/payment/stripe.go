package payment

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ejardin/internal/models"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Client wraps the Stripe operations the storefront needs: creating a
// payment intent for an order and verifying webhook callbacks.
type Client struct {
	webhookSecret string
}

type Config struct {
	SecretKey     string
	WebhookSecret string
}

func NewClient(cfg Config) *Client {
	// stripe-go keys the API client off a package-level secret.
	stripe.Key = cfg.SecretKey
	return &Client{webhookSecret: cfg.WebhookSecret}
}

// AmountCents converts a euro price to the integer cent amount Stripe
// expects, rounding to the nearest cent.
func AmountCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent creates a PaymentIntent for the order. The order and user
// identifiers ride along as metadata so the webhook can find the order.
func (c *Client) CreateIntent(order *models.Order) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(AmountCents(order.TotalPrice)),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		Metadata: map[string]string{
			"order_id":     strconv.FormatUint(uint64(order.ID), 10),
			"order_number": order.Number,
			"user_id":      strconv.FormatUint(uint64(order.UserID), 10),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %v", err)
	}
	return intent, nil
}

// VerifyWebhook checks the Stripe signature and parses the event.
func (c *Client) VerifyWebhook(payload []byte, signature string) (*stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %v", err)
	}
	return &event, nil
}

// IntentFromEvent extracts the payment intent carried by a
// payment_intent.* event.
func (c *Client) IntentFromEvent(event *stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := intent.UnmarshalJSON(event.Data.Raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment intent: %v", err)
	}
	return &intent, nil
}
