package email

import (
	"fmt"
	"time"
)

// NewPasswordResetMessage builds the transactional mail sent by the
// forgot-password flow. The link carries a single-use token.
func NewPasswordResetMessage(from, to, name, resetLink string, validFor time.Duration) *Message {
	return &Message{
		From:    from,
		To:      []string{to},
		Subject: "Reset your password",
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>A password reset was requested for your account. "+
				"Follow <a href=%q>this link</a> to choose a new password. "+
				"The link expires in %s.</p><p>If you did not request this, you can ignore this email.</p>",
			name, resetLink, validFor),
		Text: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your account. "+
				"Open %s to choose a new password. The link expires in %s.\n\n"+
				"If you did not request this, you can ignore this email.\n",
			name, resetLink, validFor),
	}
}
