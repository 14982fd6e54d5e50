package mailer

import "fmt"

const shareInvitationHTMLFmt = `<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>You've been invited to a file</h2>
  <p>%s shared the file <strong>%s</strong> with you.</p>
  <p>Sign in with this email address to accept the invitation and access the file.</p>
</body>
</html>`

const shareInvitationTextFmt = "%s shared the file %q with you. Sign in with this email address to accept the invitation."

// ShareInvitation builds the email sent when a file is shared with an
// address that may not have an account yet.
func ShareInvitation(from, recipient, sharerName, fileName string) *EmailData {
	return &EmailData{
		From:    from,
		To:      []string{recipient},
		Subject: fmt.Sprintf("%s shared %q with you", sharerName, fileName),
		HTML:    fmt.Sprintf(shareInvitationHTMLFmt, sharerName, fileName),
		Text:    fmt.Sprintf(shareInvitationTextFmt, sharerName, fileName),
	}
}
