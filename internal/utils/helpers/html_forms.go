package helpers

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// BuildContactHTML renders a contact form message for the blog owner. All
// visitor input is escaped.
func BuildContactHTML(name, email, message string, receivedAt time.Time) string {
	body := strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")

	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="560" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:10px; box-shadow:0 1px 8px #eee;">
            <tr>
              <td>
                <h2 style="color:#2d74da; margin-top:0;">New message from the contact form</h2>
                <p style="font-size:15px; color:#222;"><b>Name:</b> %s</p>
                <p style="font-size:15px; color:#222;"><b>Email:</b> <a href="mailto:%s">%s</a></p>
                <hr style="margin:16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:15px; color:#222; line-height:1.5;">%s</div>
                <hr style="margin:24px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">Received %s. Reply to this email to answer the visitor.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(email), body,
		receivedAt.UTC().Format("02 Jan 2006 15:04 MST"))
}
