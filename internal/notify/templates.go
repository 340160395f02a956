package notify

import (
	"bytes"
	"strings"
	"text/template"
)

// Message kinds.
const (
	KindWelcome      = "welcome"
	KindVerification = "verification"
	KindStatus       = "status"
	KindInvitation   = "invitation"
)

var templates = template.Must(template.New("notify").Parse(`
{{define "welcome"}}Hi {{.Name}},

Welcome to {{.Brand}}! Your suite number is {{.Suite}}.

Confirm your email to unlock your US address and start pre-alerting packages:
{{.VerifyURL}}
{{end}}
{{define "verification"}}Hi {{.Name}},

Confirm your email address for {{.Brand}}:
{{.VerifyURL}}

The link expires in 72 hours.
{{end}}
{{define "invitation"}}Hello,

You have been invited to administer {{.Brand}}. Register with this email
address and the invitation code below before {{.Expires}}:

{{.Code}}

{{.RegisterURL}}
{{end}}
{{define "status"}}Hi {{.Name}},

Your package {{.Tracking}} from {{.Merchant}} is now: {{.Status}}.
{{end}}
`))

// WelcomeData feeds the welcome and verification templates.
type WelcomeData struct {
	Brand     string
	Name      string
	Suite     string
	VerifyURL string
}

// StatusData feeds the status change template.
type StatusData struct {
	Name     string
	Tracking string
	Merchant string
	Status   string
}

// InvitationData feeds the admin invitation template.
type InvitationData struct {
	Brand       string
	Code        string
	Expires     string
	RegisterURL string
}

// Welcome renders the registration email.
func Welcome(d WelcomeData) (Message, error) {
	return render(KindWelcome, "Welcome to "+d.Brand+", your suite "+d.Suite, d)
}

// Verification renders the verification reminder email.
func Verification(d WelcomeData) (Message, error) {
	return render(KindVerification, "Confirm your "+d.Brand+" email", d)
}

// StatusChanged renders the package status email.
func StatusChanged(d StatusData) (Message, error) {
	return render(KindStatus, "Package "+d.Tracking+": "+d.Status, d)
}

// Invitation renders the admin invitation email.
func Invitation(d InvitationData) (Message, error) {
	return render(KindInvitation, "You're invited to "+d.Brand, d)
}

func render(kind, subject string, data any) (Message, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, kind, data); err != nil {
		return Message{}, err
	}
	return Message{Kind: kind, Subject: subject, Body: strings.TrimSpace(buf.String()) + "\n"}, nil
}
