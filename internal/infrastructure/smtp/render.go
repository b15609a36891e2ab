package smtp

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/verification.html.tmpl"))
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/verification.txt.tmpl"))
)

// defaultDisplayName greets users who did not give a name.
const defaultDisplayName = "there"

type messageData struct {
	AppName    string
	Name       string
	Code       string
	TTLMinutes int
	Year       int
}

// Message is a rendered verification email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

func newMessageData(appName, code, displayName string, ttl time.Duration, now time.Time) messageData {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = defaultDisplayName
	}
	return messageData{
		AppName:    appName,
		Name:       name,
		Code:       code,
		TTLMinutes: int(ttl.Round(time.Minute) / time.Minute),
		Year:       now.Year(),
	}
}

// Render builds the subject and both bodies of a verification email.
func Render(appName, code, displayName string, ttl time.Duration, now time.Time) (Message, error) {
	data := newMessageData(appName, code, displayName, ttl, now)

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return Message{}, err
	}
	return Message{
		Subject: "Verify Your Email - " + appName,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
