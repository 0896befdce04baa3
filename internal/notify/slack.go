package notify

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/slack-go/slack"
)

// SlackNotifier posts operational notices to the shop's ops channel.
// It complements the admin email alerts; a nil notifier (no token
// configured) is safe to call and does nothing.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(token, channel string) *SlackNotifier {
	if token == "" {
		return nil
	}
	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyLowStock posts a restock notice for a product that dropped below
// the low-stock threshold.
func (s *SlackNotifier) NotifyLowStock(product *models.Product) error {
	if s == nil {
		return nil
	}

	attachment := slack.Attachment{
		Color: "#ffcc00",
		Title: fmt.Sprintf("Stock faible : %s", product.Name),
		Fields: []slack.AttachmentField{
			{
				Title: "Produit",
				Value: product.Name,
				Short: true,
			},
			{
				Title: "Stock restant",
				Value: strconv.Itoa(product.Stock),
				Short: true,
			},
			{
				Title: "Catégorie",
				Value: product.Category,
				Short: true,
			},
		},
		Footer: "E-Jardin Stock Monitor",
		Ts:     json.Number(strconv.FormatInt(time.Now().Unix(), 10)),
	}

	_, _, err := s.client.PostMessage(
		s.channel,
		slack.MsgOptionAttachments(attachment),
	)
	return err
}

// NotifyOrderPaid posts a short payment confirmation so the team can start
// preparing the order.
func (s *SlackNotifier) NotifyOrderPaid(order *models.Order) error {
	if s == nil {
		return nil
	}

	attachment := slack.Attachment{
		Color: "#36a64f",
		Title: fmt.Sprintf("Commande payée : #%s", order.Number),
		Fields: []slack.AttachmentField{
			{
				Title: "Montant",
				Value: fmt.Sprintf("%.2f€", order.TotalPrice),
				Short: true,
			},
			{
				Title: "Articles",
				Value: strconv.Itoa(len(order.Items)),
				Short: true,
			},
		},
		Footer: "E-Jardin Orders",
		Ts:     json.Number(strconv.FormatInt(time.Now().Unix(), 10)),
	}

	_, _, err := s.client.PostMessage(
		s.channel,
		slack.MsgOptionAttachments(attachment),
	)
	return err
}
