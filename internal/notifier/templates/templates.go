// Package templates renders the HTML bodies of outbound emails.
package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"eduspace/shared/timezone"
)

const shellTmpl = `
  <div style="background:#f6f8fb;padding:24px">
    <div style="max-width:640px;margin:0 auto;background:#ffffff;border-radius:10px;box-shadow:0 2px 8px rgba(0,0,0,0.05);overflow:hidden">
      <div style="background:linear-gradient(90deg,#2e6ff2,#5b8cff);padding:16px 20px;color:#fff">
        <div style="font-weight:700;font-size:18px;letter-spacing:0.3px">EduSpace Scheduler</div>
        <div style="opacity:0.9;font-size:12px">Smarter room and exam management</div>
      </div>
      <div style="padding:20px 22px;color:#222;font-family:Arial,Helvetica,sans-serif;line-height:1.6">
        {{.Content}}
      </div>
      <div style="padding:14px 20px;background:#fafbff;border-top:1px solid #eef2ff;color:#6b7280;font-size:12px;text-align:center">
        &copy; {{.Year}} EduSpace &bull; This is an automated message
      </div>
    </div>
  </div>
`

const verificationTmpl = `
      <h2 style="margin:0 0 6px">Welcome to EduSpace, {{.Name}}!</h2>
      <p>Please verify your email to activate your account.</p>
      <p style="margin:18px 0">
        <a href="{{.VerifyURL}}" style="background:#2e6ff2;color:#fff;padding:10px 16px;border-radius:6px;text-decoration:none;display:inline-block">Verify Email</a>
      </p>
      <p style="font-size:12px;color:#6b7280">If the button doesn't work, copy this URL:</p>
      <p style="word-break:break-all"><a href="{{.VerifyURL}}">{{.VerifyURL}}</a></p>
`

const bookingDetailsTmpl = `
      <h2 style="margin:0 0 6px">{{.Heading}}</h2>
      <p>Hi {{.RecipientName}}, {{.Lead}}</p>
      <table style="width:100%;border-collapse:collapse" cellpadding="0" cellspacing="0">
        <tbody>
          <tr><td style="padding:6px 0;width:160px;color:#6b7280">Subject</td><td style="padding:6px 0">{{if .Subject}}{{.Subject}}{{else}}N/A{{end}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Description</td><td style="padding:6px 0">{{.Description}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Department</td><td style="padding:6px 0">{{.Department}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Room</td><td style="padding:6px 0">{{.RoomNumber}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Date</td><td style="padding:6px 0">{{.DateText}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Time</td><td style="padding:6px 0">{{.TimeText}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Sections</td><td style="padding:6px 0">{{.SectionsText}}</td></tr>
          <tr><td style="padding:6px 0;color:#6b7280">Years</td><td style="padding:6px 0">{{.YearsText}}</td></tr>
        </tbody>
      </table>
`

var (
	shell        = template.Must(template.New("shell").Parse(shellTmpl))
	verification = template.Must(template.New("verification").Parse(verificationTmpl))
	booking      = template.Must(template.New("booking").Parse(bookingDetailsTmpl))
)

type VerificationData struct {
	Name      string
	VerifyURL string
}

type BookingData struct {
	RecipientName string
	Description   string
	Subject       string
	Department    string
	RoomNumber    string
	DateText      string
	TimeText      string
	SectionsText  string
	YearsText     string

	// filled per audience by the render helpers
	Heading string
	Lead    string
}

func render(inner *template.Template, data any) (string, error) {
	var content bytes.Buffer
	if err := inner.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render email content: %w", err)
	}

	var out bytes.Buffer
	err := shell.Execute(&out, struct {
		Content template.HTML
		Year    int
	}{
		Content: template.HTML(content.String()), // nolint:gosec
		Year:    timezone.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email shell: %w", err)
	}

	return out.String(), nil
}

// Verification renders the account-activation email body.
func Verification(data VerificationData) (string, error) {
	return render(verification, data)
}

// ProfessorBooking renders the confirmation sent to the booking owner.
func ProfessorBooking(data BookingData) (string, error) {
	data.Heading = "Booking Confirmation"
	data.Lead = "your booking has been created with the details below."

	return render(booking, data)
}

// StudentBooking renders the notice sent to each matching student.
func StudentBooking(data BookingData) (string, error) {
	data.Heading = "Exam/Booking Scheduled"
	data.Lead = "an exam/booking has been scheduled that matches your cohort."

	return render(booking, data)
}
