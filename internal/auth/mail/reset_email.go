package mail

import (
	"fmt"
	"net/url"
	"time"
)

const resetSubject = "Reset Your TarotLyfe Password"

// BuildResetEmail renders the password reset message. The raw token goes into
// the link as a query parameter; it is never stored server side in this form.
func BuildResetEmail(frontendURL, token string, ttl time.Duration) (subject, htmlBody, textBody string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, url.QueryEscape(token))
	hours := int(ttl.Hours())
	if hours < 1 {
		hours = 1
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head><title>Reset Your Password</title></head>
  <body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #7c3aed;">Reset Your Password</h1>
    <p>You requested to reset your password for your TarotLyfe account.</p>
    <p>Click the button below to reset your password:</p>
    <p><a href="%s" style="background-color: #7c3aed; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all; color: #666; font-size: 12px;">%s</p>
    <p style="color: #666; font-size: 14px;">This link will expire in %d hour(s).</p>
    <p style="color: #666; font-size: 14px;">If you didn't request this password reset, please ignore this email.</p>
  </body>
</html>`, resetURL, resetURL, hours)

	textBody = fmt.Sprintf(`Reset Your Password

You requested to reset your password for your TarotLyfe account.

Click this link to reset your password:
%s

This link will expire in %d hour(s).

If you didn't request this password reset, please ignore this email.`, resetURL, hours)

	return resetSubject, htmlBody, textBody
}
