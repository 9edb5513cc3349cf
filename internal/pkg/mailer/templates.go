package mailer

import (
	"fmt"
	"html"

	"github.com/edupro/talentdesk/internal/app/models"
)

const bodyWrapper = `
	<html>
	<body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			%s
			<p>Best regards,<br>The TalentDesk Team</p>
		</div>
	</body>
	</html>
`

func wrap(inner string) string {
	return fmt.Sprintf(bodyWrapper, inner)
}

func esc(payload map[string]string, key string) string {
	return html.EscapeString(payload[key])
}

// renderTemplate builds the HTML and plain-text bodies for a
// notification template from its payload map.
func renderTemplate(t models.NotificationTemplate, payload map[string]string) (htmlBody, textBody string, err error) {
	switch t {
	case models.TemplateAssignmentStatus:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Assignment Update</h2>
			<p>Hello %s,</p>
			<p>Your %s <strong>%s</strong> has moved to status: <strong>%s</strong>.</p>
			<p>Log in to your dashboard for details.</p>`,
			esc(payload, "name"), esc(payload, "itemType"), esc(payload, "itemName"), esc(payload, "status"))
		text := fmt.Sprintf("Hello %s, your %s %q is now %s.",
			payload["name"], payload["itemType"], payload["itemName"], payload["status"])
		return wrap(inner), text, nil

	case models.TemplateInvite:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">You're Invited</h2>
			<p>Hello %s,</p>
			<p>An account has been created for you. Click the button below to set your password and activate it:</p>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Activate Account</a>
			</div>
			<p>This invitation expires in 7 days.</p>`,
			esc(payload, "name"), esc(payload, "activationUrl"))
		text := fmt.Sprintf("Hello %s, activate your account: %s (expires in 7 days).",
			payload["name"], payload["activationUrl"])
		return wrap(inner), text, nil

	case models.TemplateOTP:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Verification Code</h2>
			<p>Hello,</p>
			<p>Your registration code is:</p>
			<div style="text-align: center; margin: 30px 0;">
				<span style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</span>
			</div>
			<p>The code expires in 60 seconds. If you did not request it, please ignore this email.</p>`,
			esc(payload, "code"))
		text := fmt.Sprintf("Your registration code is %s. It expires in 60 seconds.", payload["code"])
		return wrap(inner), text, nil

	case models.TemplatePasswordReset:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Password Reset</h2>
			<p>Hello %s,</p>
			<p>We received a request to reset your password. Click the button below to choose a new one:</p>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
			</div>
			<p>This link expires in 1 hour. If you did not request a reset, please ignore this email.</p>`,
			esc(payload, "name"), esc(payload, "resetUrl"))
		text := fmt.Sprintf("Hello %s, reset your password: %s (expires in 1 hour).",
			payload["name"], payload["resetUrl"])
		return wrap(inner), text, nil

	case models.TemplateSubmissionReview:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Submission Reviewed</h2>
			<p>Hello %s,</p>
			<p>Your submission <strong>%s</strong> has been reviewed: <strong>%s</strong>.</p>
			<p>%s</p>`,
			esc(payload, "name"), esc(payload, "title"), esc(payload, "status"), esc(payload, "note"))
		text := fmt.Sprintf("Hello %s, your submission %q was reviewed: %s. %s",
			payload["name"], payload["title"], payload["status"], payload["note"])
		return wrap(inner), text, nil

	case models.TemplateContactAck:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">We Received Your Message</h2>
			<p>Hello %s,</p>
			<p>Thank you for reaching out. Our team will get back to you within 2 business days.</p>`,
			esc(payload, "name"))
		text := fmt.Sprintf("Hello %s, we received your message and will reply within 2 business days.",
			payload["name"])
		return wrap(inner), text, nil

	case models.TemplatePayslipReady:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Payslip Ready</h2>
			<p>Hello %s,</p>
			<p>Your payslip for <strong>%s</strong> is now available for download from your dashboard.</p>`,
			esc(payload, "name"), esc(payload, "month"))
		text := fmt.Sprintf("Hello %s, your payslip for %s is ready.",
			payload["name"], payload["month"])
		return wrap(inner), text, nil

	case models.TemplateOfferLetter:
		inner := fmt.Sprintf(`
			<h2 style="color: #333;">Offer Letter</h2>
			<p>Hello %s,</p>
			<p>Congratulations! Please find your offer for the position of <strong>%s</strong> attached below.</p>
			<p>We look forward to welcoming you aboard.</p>`,
			esc(payload, "name"), esc(payload, "position"))
		text := fmt.Sprintf("Hello %s, congratulations on your offer for %s.",
			payload["name"], payload["position"])
		return wrap(inner), text, nil
	}
	return "", "", fmt.Errorf("unknown notification template: %s", t)
}
