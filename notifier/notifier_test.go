package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"cc-catalog/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/mail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	return s.err
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, string) error { return f.err }

func TestEmailNotify(t *testing.T) {
	sender := &recordingSender{}
	n, err := newEmailNotifier(EmailConfig{SenderEmail: "bot@example.com", RecipientEmail: "ops@example.com"},
		"plugin.video.cc.com", sender, logging.Discard())
	require.NoError(t, err)
	n.now = func() time.Time { return time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC) }

	require.NoError(t, n.Notify(context.Background(), "Video not available"))
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"ops@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"plugin.video.cc.com: Video not available"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "March 1, 2024")
}

func TestEmailNotifySkipsWithoutRecipient(t *testing.T) {
	sender := &recordingSender{}
	n, err := newEmailNotifier(EmailConfig{}, "x", sender, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), "msg"))
	assert.Empty(t, sender.sent)
}

func TestEmailNotifySendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	n, err := newEmailNotifier(EmailConfig{RecipientEmail: "ops@example.com"}, "x", sender, logging.Discard())
	require.NoError(t, err)

	err = n.Notify(context.Background(), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestGetEmailConfigFromEnv(t *testing.T) {
	t.Setenv("EMAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_SMTP_PORT", "2525")
	t.Setenv("EMAIL_RECIPIENT", "ops@example.com")

	cfg := GetEmailConfigFromEnv(logging.Discard())
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.True(t, cfg.Enabled())

	t.Setenv("EMAIL_SMTP_PORT", "abc")
	assert.Equal(t, 587, GetEmailConfigFromEnv(logging.Discard()).SMTPPort)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("short"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefghwxyz"))
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	m := Multi{NewLogNotifier(logging.Discard()), failingNotifier{err: boom}}
	err := m.Notify(context.Background(), "msg")
	assert.True(t, errors.Is(err, boom))

	assert.NoError(t, Multi{NewLogNotifier(logging.Discard())}.Notify(context.Background(), "msg"))
}
