package email

import (
	"bytes"
	"html/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<p>Hi {{.Name}},</p>
<p>Thanks for reaching out. We received your message and will get back to you shortly.</p>
<blockquote>{{.Message}}</blockquote>
<p>MaxApp</p>`))

var notificationTmpl = template.Must(template.New("notification").Parse(`<p>New contact form submission:</p>
<ul>
<li>Name: {{.FirstName}} {{.LastName}}</li>
<li>Email: {{.Email}}</li>
<li>Phone: {{.Phone}}</li>
</ul>
<blockquote>{{.Message}}</blockquote>`))

var replyTmpl = template.Must(template.New("reply").Parse(`<p>Hi {{.Name}},</p>
<p>{{.Message}}</p>
<p>MaxApp</p>`))

// ConfirmationBody renders the email sent back to a visitor after a
// successful contact form submission.
func ConfirmationBody(name, message string) string {
	return render(confirmationTmpl, struct{ Name, Message string }{name, message})
}

// NotificationBody renders the email sent to the admin inbox about a new
// submission.
func NotificationBody(firstName, lastName, emailAddr, phone, message string) string {
	return render(notificationTmpl, struct {
		FirstName, LastName, Email, Phone, Message string
	}{firstName, lastName, emailAddr, phone, message})
}

// ReplyBody renders the admin's reply to a submission.
func ReplyBody(name, message string) string {
	return render(replyTmpl, struct{ Name, Message string }{name, message})
}

func render(t *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are static and the data is plain strings; an execute
		// error here is a programming bug.
		panic(err)
	}
	return buf.String()
}
