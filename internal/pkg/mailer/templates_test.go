package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupro/talentdesk/internal/app/models"
)

func TestBuildMessageOTP(t *testing.T) {
	msg, err := BuildMessage(models.Notification{
		Template:  models.TemplateOTP,
		Recipient: "new@example.com",
		Subject:   "Your verification code",
		Payload:   map[string]string{"code": "482913"},
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", msg.ToEmail)
	assert.Contains(t, msg.HTML, "482913")
	assert.Contains(t, msg.Text, "482913")
}

func TestBuildMessageInvite(t *testing.T) {
	msg, err := BuildMessage(models.Notification{
		Template:      models.TemplateInvite,
		Recipient:     "emp@example.com",
		RecipientName: "Kiran Rao",
		Subject:       "You're invited",
		Payload: map[string]string{
			"name":          "Kiran Rao",
			"activationUrl": "http://localhost:3000/activate?token=abc",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Kiran Rao", msg.ToName)
	assert.Contains(t, msg.HTML, "http://localhost:3000/activate?token=abc")
}

func TestBuildMessageEscapesPayload(t *testing.T) {
	msg, err := BuildMessage(models.Notification{
		Template: models.TemplateSubmissionReview,
		Payload: map[string]string{
			"name":   "<script>alert(1)</script>",
			"title":  "demo",
			"status": "approved",
		},
	})

	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestBuildMessageAllTemplatesRender(t *testing.T) {
	templates := []models.NotificationTemplate{
		models.TemplateAssignmentStatus,
		models.TemplateInvite,
		models.TemplateOTP,
		models.TemplatePasswordReset,
		models.TemplateSubmissionReview,
		models.TemplateContactAck,
		models.TemplatePayslipReady,
		models.TemplateOfferLetter,
	}
	for _, tpl := range templates {
		msg, err := BuildMessage(models.Notification{Template: tpl, Payload: map[string]string{}})
		require.NoError(t, err, string(tpl))
		assert.Contains(t, msg.HTML, "TalentDesk", string(tpl))
	}
}

func TestBuildMessageUnknownTemplate(t *testing.T) {
	_, err := BuildMessage(models.Notification{Template: "carrier-pigeon"})
	assert.Error(t, err)
}
