package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"callcampaign_backend/internal/events"
	"callcampaign_backend/platform/logger"
)

var alertTemplate = template.Must(template.New("alert").Parse(`<html><body>
<h2>{{.Heading}}</h2>
<table border="0" cellpadding="4">
{{range .Fields}}<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{end}}</table>
</body></html>`))

type alertField struct {
	Label string
	Value string
}

type alertData struct {
	Heading string
	Fields  []alertField
}

// Notifier turns domain events into operator emails. Delivery is
// best-effort; failures are logged and never block the publisher.
type Notifier struct {
	sender   Sender
	opsEmail string
	log      *logger.Logger
}

// NewNotifier creates a notifier that alerts the given ops address.
func NewNotifier(sender Sender, opsEmail string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, opsEmail: opsEmail, log: log}
}

// Register subscribes the notifier to the events it reports on.
func (n *Notifier) Register(bus events.Bus) {
	bus.Subscribe(events.LeadUnresolved{}.EventName(), events.HandlerFunc(n.onLeadUnresolved))
	bus.Subscribe(events.CallDispatchFailed{}.EventName(), events.HandlerFunc(n.onCallDispatchFailed))
	bus.Subscribe(events.LeadsImported{}.EventName(), events.HandlerFunc(n.onLeadsImported))
}

func (n *Notifier) onLeadUnresolved(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadUnresolved)
	if !ok {
		return nil
	}

	return n.send(ctx, "Webhook delivery could not be matched to a lead", alertData{
		Heading: "Unmatched call webhook",
		Fields: []alertField{
			{Label: "Contact ID", Value: e.ContactID},
			{Label: "Phone", Value: e.Phone},
			{Label: "End reason", Value: e.EndReason},
			{Label: "Payload preview", Value: e.RawPreview},
		},
	})
}

func (n *Notifier) onCallDispatchFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CallDispatchFailed)
	if !ok {
		return nil
	}

	return n.send(ctx, "Outbound call dispatch failed", alertData{
		Heading: "Call dispatch failed",
		Fields: []alertField{
			{Label: "Lead ID", Value: e.LeadID.String()},
			{Label: "Phone", Value: e.Phone},
			{Label: "Reason", Value: e.Reason},
		},
	})
}

func (n *Notifier) onLeadsImported(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadsImported)
	if !ok {
		return nil
	}

	fields := []alertField{
		{Label: "File", Value: e.FileName},
		{Label: "Imported", Value: fmt.Sprintf("%d", e.Imported)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", e.Skipped)},
	}
	for _, sample := range e.ErrorSamples {
		fields = append(fields, alertField{Label: "Skipped row", Value: sample})
	}

	return n.send(ctx, fmt.Sprintf("Lead import finished: %s", e.FileName), alertData{
		Heading: "Lead import finished",
		Fields:  fields,
	})
}

func (n *Notifier) send(ctx context.Context, subject string, data alertData) error {
	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		n.log.Error("notification_render_failed", "subject", subject, "error", err.Error())
		return nil
	}

	if err := n.sender.Send(ctx, n.opsEmail, subject, body.String()); err != nil {
		n.log.Error("notification_send_failed", "subject", subject, "error", err.Error())
	}
	return nil
}
