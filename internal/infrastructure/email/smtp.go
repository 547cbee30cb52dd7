package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"studia/internal/application/billing/usecases"
	"studia/internal/shared/biztime"
	"studia/internal/shared/utils"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:8081")
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendPurchaseReceipt emails the buyer a receipt for a settled course
// purchase.
func (s *SMTPEmailService) SendPurchaseReceipt(ctx context.Context, cmd usecases.ReceiptCommand) error {
	amount := utils.FormatPrice(cmd.AmountCents, cmd.Currency)
	paidAt := biztime.FormatInBizTimezone(cmd.PaidAt, "02/01/2006 15:04")
	libraryURL := fmt.Sprintf("%s/library", s.config.BaseURL)

	subject := fmt.Sprintf("Your receipt for %s", cmd.CourseTitle)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Thank you for your purchase, %s!</h2>
			<p>Your payment has been confirmed.</p>
			<ul>
				<li>Course: %s</li>
				<li>Amount: %s</li>
				<li>Order: %s</li>
				<li>Date: %s</li>
			</ul>
			<p>The course is now available in <a href="%s">your library</a>.</p>
		</body>
		</html>
	`, cmd.BuyerName, cmd.CourseTitle, amount, cmd.OrderSID, paidAt, libraryURL)

	plainBody := fmt.Sprintf(`
Thank you for your purchase, %s!

Your payment has been confirmed.

Course: %s
Amount: %s
Order: %s
Date: %s

The course is now available in your library:
%s
	`, cmd.BuyerName, cmd.CourseTitle, amount, cmd.OrderSID, paidAt, libraryURL)

	return s.sendEmail(ctx, cmd.BuyerEmail, subject, htmlBody, plainBody)
}

// SendSaleNotification emails the author when one of their courses
// sells.
func (s *SMTPEmailService) SendSaleNotification(ctx context.Context, cmd usecases.SaleNotificationCommand) error {
	amount := utils.FormatPrice(cmd.AmountCents, cmd.Currency)
	paidAt := biztime.FormatInBizTimezone(cmd.PaidAt, "02/01/2006 15:04")
	salesURL := fmt.Sprintf("%s/sales", s.config.BaseURL)

	subject := fmt.Sprintf("You made a sale: %s", cmd.CourseTitle)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Congratulations, %s!</h2>
			<p>Your course just sold.</p>
			<ul>
				<li>Course: %s</li>
				<li>Amount: %s</li>
				<li>Order: %s</li>
				<li>Date: %s</li>
			</ul>
			<p>See all your sales on <a href="%s">your sales page</a>.</p>
		</body>
		</html>
	`, cmd.SellerName, cmd.CourseTitle, amount, cmd.OrderSID, paidAt, salesURL)

	plainBody := fmt.Sprintf(`
Congratulations, %s!

Your course just sold.

Course: %s
Amount: %s
Order: %s
Date: %s

See all your sales:
%s
	`, cmd.SellerName, cmd.CourseTitle, amount, cmd.OrderSID, paidAt, salesURL)

	return s.sendEmail(ctx, cmd.SellerEmail, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
