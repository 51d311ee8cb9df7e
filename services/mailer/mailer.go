package mailer

import (
	"bytes"
	"fmt"
	"io"

	qrcode "github.com/skip2/go-qrcode"
	gomail "gopkg.in/gomail.v2"

	"seat-booking/config"
	bookingModel "seat-booking/models/booking"
	internModel "seat-booking/models/intern"
)

// Mailer sends booking notifications. Dispatch is best effort: callers fire it
// off the request path and only log failures.
type Mailer interface {
	SendBookingConfirmation(intern *internModel.Intern, booking *bookingModel.Booking) error
	SendConfirmedNotice(intern *internModel.Intern, booking *bookingModel.Booking) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// QRPayload is the text encoded into the scannable code: enough for an admin
// to identify the booking at the door.
func QRPayload(intern *internModel.Intern, booking *bookingModel.Booking) string {
	return fmt.Sprintf("Booking Details:\nIntern ID: %s\nName: %s %s\nSeat Number: %s\nDate: %s",
		intern.InternID, intern.FirstName, intern.LastName,
		booking.SeatNumber, booking.BookingDate.Format("2006-01-02"))
}

// ConfirmationBody renders the HTML body of the booking email.
func ConfirmationBody(intern *internModel.Intern, booking *bookingModel.Booking) string {
	specialRequest := booking.SpecialRequest
	if specialRequest == "" {
		specialRequest = "None"
	}
	return fmt.Sprintf(`<p>Hello %s,</p>
<p>Your seat booking is confirmed!</p>
<p><strong>Booking Details:</strong></p>
<ul>
    <li>Seat Number: %s</li>
    <li>Date: %s</li>
    <li>Special Request: %s</li>
</ul>
<p>You can download and save the attached QR code to display upon arrival. Our admins can scan this QR code to view your booking details.</p>
<p>Thank you for booking with us!</p>`,
		intern.FirstName, booking.SeatNumber,
		booking.BookingDate.Format("2006-01-02"), specialRequest)
}

// SendBookingConfirmation mails the intern after a successful booking, with
// the QR code attached as a PNG.
func (m *SMTPMailer) SendBookingConfirmation(intern *internModel.Intern, booking *bookingModel.Booking) error {
	png, err := qrcode.Encode(QRPayload(intern, booking), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", intern.Email)
	msg.SetHeader("Subject", "Seat Booking Confirmation")
	msg.SetBody("text/html", ConfirmationBody(intern, booking))
	msg.Attach("booking_qr_code.png",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(png))
			return err
		}))

	return m.dialer.DialAndSend(msg)
}

// SendConfirmedNotice mails the intern when an administrator confirms their
// booking.
func (m *SMTPMailer) SendConfirmedNotice(intern *internModel.Intern, booking *bookingModel.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", intern.Email)
	msg.SetHeader("Subject", "Seat Booking Confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour booking for seat number %s on %s has been confirmed.\n",
		intern.FirstName, booking.SeatNumber, booking.BookingDate.Format("2006-01-02")))

	return m.dialer.DialAndSend(msg)
}
