package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"telshop/internal/models"
)

type OverdueSource interface {
	OverdueClients(now time.Time) ([]*models.CreditClient, error)
}

type Notifier interface {
	Notify(text string) error
}

type SMSSender interface {
	Send(to, text string) error
}

// ReminderService runs the daily overdue-credit round: a digest email to the
// owner, a Telegram alert, and optionally one SMS per overdue client.
// Notification failures are logged and do not stop the rest of the round.
type ReminderService struct {
	credits    OverdueSource
	email      EmailService
	alerts     Notifier
	sms        SMSSender
	ownerEmail string
	sendSMS    bool
}

func NewReminderService(credits OverdueSource, email EmailService, alerts Notifier, sms SMSSender, ownerEmail string, sendSMS bool) *ReminderService {
	return &ReminderService{
		credits:    credits,
		email:      email,
		alerts:     alerts,
		sms:        sms,
		ownerEmail: ownerEmail,
		sendSMS:    sendSMS,
	}
}

func (s *ReminderService) RunOnce(now time.Time) error {
	clients, err := s.credits.OverdueClients(now)
	if err != nil {
		return fmt.Errorf("reminder run: %w", err)
	}
	if len(clients) == 0 {
		log.Printf("[reminder] nothing overdue")
		return nil
	}

	if s.email != nil && s.ownerEmail != "" {
		if err := s.email.SendOverdueDigest(s.ownerEmail, clients); err != nil {
			log.Printf("[reminder] email digest failed: %v", err)
		}
	}

	if s.alerts != nil {
		if err := s.alerts.Notify(overdueAlertText(clients)); err != nil {
			log.Printf("[reminder] telegram alert failed: %v", err)
		}
	}

	if s.sendSMS && s.sms != nil {
		for _, c := range clients {
			text := fmt.Sprintf("Rappel: votre solde restant est de %.2f DH. Merci de passer régler votre crédit.", c.RemainingBalance)
			if err := s.sms.Send(c.Phone, text); err != nil {
				log.Printf("[reminder] sms to %s failed: %v", c.Phone, err)
			}
		}
	}

	log.Printf("[reminder] processed %d overdue client(s)", len(clients))
	return nil
}

func overdueAlertText(clients []*models.CreditClient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ <b>Crédits en retard: %d</b>\n\n", len(clients))
	total := 0.0
	for _, c := range clients {
		fmt.Fprintf(&b, "• %s — %.2f DH\n", c.Name, c.RemainingBalance)
		total += c.RemainingBalance
	}
	fmt.Fprintf(&b, "\nTotal: %.2f DH", models.Round2(total))
	return b.String()
}
