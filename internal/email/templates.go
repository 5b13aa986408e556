package email

import (
	"fmt"
	"html"

	"amplify/internal/notify"
)

// baseHTML wraps content in a consistent HTML email template.
func baseHTML(title, content, baseURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #101F38; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { padding: 15px; font-size: 12px; color: #6b7280; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><a href="%s">%s</a></div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content, baseURL, html.EscapeString(baseURL))
}

// notificationEmail renders n as a subject plus HTML and text bodies.
func notificationEmail(n notify.Notification, baseURL string) (subject, htmlBody, textBody string) {
	subject = "[Amplify] " + n.Title

	class := ""
	if n.Severity == notify.SeverityDestructive {
		class = ` class="error"`
	}
	content := fmt.Sprintf(`<p%s>%s</p><p>%s</p>`,
		class, html.EscapeString(n.Description), n.At.UTC().Format("2006-01-02 15:04 MST"))
	htmlBody = baseHTML(n.Title, content, baseURL)

	textBody = fmt.Sprintf("%s\n\n%s\n%s\n\n%s\n", n.Title, n.Description, n.At.UTC().Format("2006-01-02 15:04 MST"), baseURL)
	return subject, htmlBody, textBody
}
