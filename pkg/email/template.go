package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ContactData holds the data for contact form emails
type ContactData struct {
	Name    string
	Email   string
	Message string
}

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
  <div style="background-color: #6c5ce7; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 24px;">New Contact Form Submission</h1>
  </div>
  <div style="background-color: white; padding: 30px; border-radius: 0 0 10px 10px;">
    <div style="margin-bottom: 20px;">
      <h3 style="color: #6c5ce7; margin-bottom: 10px;">Contact Information</h3>
      <p><strong>Name:</strong> {{.Name}}</p>
      <p><strong>Email:</strong> {{.Email}}</p>
    </div>
    <div style="margin-bottom: 20px;">
      <h3 style="color: #6c5ce7; margin-bottom: 10px;">Message</h3>
      <p style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; border-left: 4px solid #6c5ce7;">{{nl2br .Message}}</p>
    </div>
    <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
      <p style="color: #666; font-size: 14px;">This message was sent from your portfolio website contact form.</p>
    </div>
  </div>
</div>`

var contactTmpl = template.Must(template.New("contact").Funcs(template.FuncMap{
	"nl2br": nl2br,
}).Parse(contactEmailTemplate))

// nl2br escapes s and turns line breaks into <br> tags.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// ContactSubject is the subject line of a contact notification.
func ContactSubject(name string) string {
	return fmt.Sprintf("New Contact Form Submission from %s", name)
}

// RenderContact renders the HTML body and the plain-text fallback.
func RenderContact(data ContactData) (string, string, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}

	text := fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\nMessage:\n%s\n",
		data.Name, data.Email, data.Message)

	return body.String(), text, nil
}
