package mailer

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"unicode"
)

const textNotice = `Ciao {{.Name}},

abbiamo ricevuto la tua richiesta ma non contiene abbastanza dettagli per aprire un ticket.
Descrivi il problema in modo più completo (cosa stavi facendo, cosa ti aspettavi, cosa è successo) e inviala di nuovo{{if .FormLink}} da qui: {{.FormLink}}{{end}}.

Grazie,
{{.SenderName}}
`

const htmlNotice = `<p>Ciao {{.Name}},</p>
<p>abbiamo ricevuto la tua richiesta ma non contiene abbastanza dettagli per aprire un ticket.</p>
<p>Descrivi il problema in modo più completo (cosa stavi facendo, cosa ti aspettavi, cosa è successo) e inviala di nuovo{{if .FormLink}} <a href="{{.FormLink}}">compilando il modulo</a>{{end}}.</p>
<p>Grazie,<br>{{.SenderName}}</p>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("notice.txt").Parse(textNotice))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("notice.html").Parse(htmlNotice))
)

type noticeData struct {
	Name       string
	FormLink   string
	SenderName string
}

func render(data noticeData) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}

// DisplayName turns "mario.rossi@example.com" into "Mario Rossi".
func DisplayName(address string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(address), "@")
	local, _, _ = strings.Cut(local, "+")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return local
	}
	for i, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
