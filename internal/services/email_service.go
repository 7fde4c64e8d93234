package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"telshop/internal/models"
)

type EmailService interface {
	SendOverdueDigest(to string, clients []*models.CreditClient) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOverdueDigest(to string, clients []*models.CreditClient) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Crédits en retard: %d client(s)", len(clients)))

	var rows strings.Builder
	total := 0.0
	for _, c := range clients {
		due := ""
		if c.PaymentDueDate != nil {
			due = c.PaymentDueDate.Format("02/01/2006")
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%.2f DH</td><td>%s</td></tr>",
			c.Name, c.Phone, c.RemainingBalance, due)
		total += c.RemainingBalance
	}

	body := fmt.Sprintf(`
		<h3>Clients avec crédit en retard</h3>
		<table border="1" cellpadding="4" cellspacing="0">
			<tr><th>Client</th><th>Téléphone</th><th>Solde restant</th><th>Échéance</th></tr>
			%s
		</table>
		<p><strong>Total: %.2f DH</strong></p>
	`, rows.String(), models.Round2(total))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send overdue digest: %w", err)
	}
	return nil
}
