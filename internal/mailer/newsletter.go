package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

var newsletterTmpl = template.Must(template.New("newsletter").Parse(`
<div style="background:#f8fafc;padding:24px;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="max-width:680px;margin:0 auto;background:#ffffff;border:1px solid #e2e8f0;border-radius:12px;padding:24px;">
    <tr>
      <td>
        <p style="margin:0 0 8px;color:#6366f1;font-weight:700;">CreatorAILab Weekly Brief</p>
        <h1 style="margin:0 0 10px;font-size:26px;color:#0f172a;">AI Tool Playbook - {{.IssueDate}}</h1>
        <p style="margin:0 0 20px;color:#475569;line-height:1.6;">This issue gives you one concrete execution idea per tool so you can ship faster without adding operational chaos.</p>
      </td>
    </tr>
    {{- range .Sections}}
    <tr>
      <td style="padding: 0 0 20px;">
        <h3 style="margin: 0 0 8px; font-size: 18px; color: #0f172a;">{{.Name}}</h3>
        <p style="margin: 0; color: #334155; line-height: 1.55;">{{.Hook}}</p>
      </td>
    </tr>
    {{- end}}
    <tr>
      <td style="padding-top:8px;border-top:1px solid #e2e8f0;">
        <p style="margin:10px 0 0;color:#64748b;font-size:13px;line-height:1.5;">You are receiving this because you subscribed at CreatorAILab.</p>
      </td>
    </tr>
  </table>
</div>
`))

type section struct {
	Name string
	Hook string
}

// RenderNewsletter builds the welcome issue: one execution idea per tool.
func RenderNewsletter(tools []domain.Tool, issued time.Time) (string, error) {
	data := struct {
		IssueDate string
		Sections  []section
	}{
		IssueDate: issued.Format("January 2, 2006"),
	}
	for _, t := range tools {
		if t.NewsletterHook == "" {
			continue
		}
		data.Sections = append(data.Sections, section{Name: t.Name, Hook: t.NewsletterHook})
	}

	var buf bytes.Buffer
	if err := newsletterTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render newsletter: %w", err)
	}
	return buf.String(), nil
}
