package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/models"
	"gopkg.in/gomail.v2"
)

// Mailer mengirim email status booking ke kontak customer.
type Mailer interface {
	SendBookingStatus(booking *models.Booking) error
}

// NoopMailer dipakai saat SMTP tidak dikonfigurasi
type NoopMailer struct{}

func (NoopMailer) SendBookingStatus(*models.Booking) error { return nil }

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) Mailer {
	if !cfg.Enabled() {
		return NoopMailer{}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendBookingStatus(booking *models.Booking) error {
	if booking.CustomerEmail == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", booking.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Booking #%d %s", booking.ID, booking.Status))
	msg.SetBody("text/plain", bookingStatusBody(booking))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send booking email to %s: %w", booking.CustomerEmail, err)
	}
	return nil
}

func bookingStatusBody(b *models.Booking) string {
	restaurant := fmt.Sprintf("restaurant #%d", b.RestaurantID)
	if b.Restaurant != nil {
		restaurant = b.Restaurant.Name
	}
	body := fmt.Sprintf("Hello %s,\n\nYour booking at %s on %s at %s for %d guests is now %s.\n",
		b.CustomerName, restaurant, time.Time(b.BookingDate).Format(DateLayout),
		b.BookingTime.String(), b.PartySize, b.Status)
	if b.Status == models.BookingStatusConfirmed && b.Table != nil {
		body += fmt.Sprintf("Your table: %s\n", b.Table.TableNumber)
	}
	return body
}
