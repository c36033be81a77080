package compose

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

const htmlLayout = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background-color: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
    .section { margin-bottom: 20px; }
    .section-title { font-weight: bold; color: #2563eb; margin-bottom: 10px; font-size: 16px; }
    .info-row { padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
    .label { font-weight: 600; color: #6b7280; }
    .value { color: #111827; }
    .footer { background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; }
    .highlight { background-color: #dbeafe; padding: 15px; border-radius: 8px; margin-top: 15px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 style="margin: 0;">New Lead - {{.BusinessName}}</h1>
      <p style="margin: 10px 0 0 0; opacity: 0.9;">A new caller just contacted your business</p>
    </div>
    <div class="content">
      <div class="section">
        <div class="section-title">Contact Information</div>
{{- range .Contact}}
        <div class="info-row">
          <span class="label">{{.Label}}:</span>
          <span class="value">{{.Value}}</span>
        </div>
{{- end}}
      </div>
      <div class="section">
        <div class="section-title">Move Details</div>
{{- range .Move}}
        <div class="info-row">
          <span class="label">{{.Label}}:</span>
          <span class="value">{{.Value}}</span>
        </div>
{{- end}}
      </div>
      <div class="highlight">
        <strong>Call Received:</strong> {{.ReceivedAt}} ({{.ZoneLabel}})
      </div>
    </div>
    <div class="footer">
      This is an automated notification from your {{.BusinessName}} AI Receptionist
    </div>
  </div>
</body>
</html>`

const textLayout = `New Lead - {{.BusinessName}}

Contact Information
{{- range .Contact}}
  {{.Label}}: {{.Value}}
{{- end}}

Move Details
{{- range .Move}}
  {{.Label}}: {{.Value}}
{{- end}}

Call Received: {{.ReceivedAt}} ({{.ZoneLabel}})

This is an automated notification from your {{.BusinessName}} AI Receptionist
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("lead.html").Parse(htmlLayout))
	textTmpl = texttemplate.Must(texttemplate.New("lead.txt").Parse(textLayout))
)
