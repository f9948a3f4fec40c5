package email

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"shaadicircle/internal/domain"
)

type emailTemplate struct {
	subject string
	html    string
	text    string
}

var templates = map[string]emailTemplate{
	"welcome": {
		subject: "Welcome to Shaadi Circle, {{.Username}}!",
		html: `<h2>Welcome, {{.Username}}!</h2>
<p>Your Shaadi Circle account is ready. Create a shaadi or join one with an invite code to start sharing moments.</p>`,
		text: `Welcome, {{.Username}}!

Your Shaadi Circle account is ready. Create a shaadi or join one with an invite code to start sharing moments.`,
	},
	"invite": {
		subject: "You're invited to {{.ShaadiName}}",
		html: `<h2>{{if .GuestName}}Dear {{.GuestName}},{{else}}Hello,{{end}}</h2>
<p>You are invited to celebrate the wedding of <strong>{{.BrideName}}</strong> and <strong>{{.GroomName}}</strong>.</p>
<p><a href="{{.InviteLink}}">Join the celebration</a> or enter code <strong>{{.InviteCode}}</strong> in the app.</p>`,
		text: `{{if .GuestName}}Dear {{.GuestName}},{{else}}Hello,{{end}}

You are invited to celebrate the wedding of {{.BrideName}} and {{.GroomName}}.

Join here: {{.InviteLink}}
Or enter code {{.InviteCode}} in the app.`,
	},
	"invite_reminder": {
		subject: "Reminder: {{.ShaadiName}} is waiting for you",
		html: `<h2>{{if .GuestName}}Dear {{.GuestName}},{{else}}Hello,{{end}}</h2>
<p>Just a reminder that {{.BrideName}} and {{.GroomName}} would love to have you at their wedding.</p>
<p><a href="{{.InviteLink}}">Join with code {{.InviteCode}}</a></p>`,
		text: `{{if .GuestName}}Dear {{.GuestName}},{{else}}Hello,{{end}}

Just a reminder that {{.BrideName}} and {{.GroomName}} would love to have you at their wedding.

Join here: {{.InviteLink}} (code {{.InviteCode}})`,
	},
}

type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer backed by the built-in
// templates: welcome, invite, invite_reminder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

func (r *templateRenderer) Render(templateName string, data any) (string, string, string, error) {
	tpl, ok := templates[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	subject, err := renderText(templateName+"_subject", tpl.subject, data)
	if err != nil {
		return "", "", "", err
	}
	htmlBody, err := renderHTML(templateName+"_html", tpl.html, data)
	if err != nil {
		return "", "", "", err
	}
	textBody, err := renderText(templateName+"_text", tpl.text, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, htmlBody, textBody, nil
}

func renderHTML(name, tpl string, data any) (string, error) {
	t, err := htmltemplate.New(name).Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return sb.String(), nil
}

func renderText(name, tpl string, data any) (string, error) {
	t, err := texttemplate.New(name).Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return sb.String(), nil
}
