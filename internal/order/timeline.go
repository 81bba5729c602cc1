package order

import (
	"html/template"
	"strings"
	"time"
)

// timelineStep is one rendered row of the order timeline fragment.
type timelineStep struct {
	Label   string
	At      *time.Time
	Done    bool
	Current bool
}

var timelineTmpl = template.Must(template.New("timeline").Parse(`<ul class="order-timeline">
{{- range .Steps }}
  <li class="step{{ if .Done }} done{{ end }}{{ if .Current }} current{{ end }}">
    <span class="label">{{ .Label }}</span>
    {{- if .At }}
    <span class="time">{{ .At.Format "02 Jan 2006 15:04" }}</span>
    {{- end }}
  </li>
{{- end }}
{{- if .Courier }}
  <li class="courier">Courier: {{ .Courier }}{{ if .Expected }} &middot; Expected {{ .Expected.Format "02 Jan 2006" }}{{ end }}</li>
{{- end }}
</ul>`))

// RenderTimeline renders the polling endpoint's HTML fragment from the
// stamped timeline. Cancelled orders show the cancellation step
// instead of the remaining fulfillment steps.
func RenderTimeline(o *Order) (string, error) {
	pending := o.PendingAt
	steps := []timelineStep{
		{Label: "Pending", At: &pending, Done: true},
	}

	if o.Status == StatusCancelled {
		steps = append(steps, timelineStep{
			Label:   "Cancelled",
			At:      o.CancelledAt,
			Done:    true,
			Current: true,
		})
	} else {
		steps = append(steps,
			timelineStep{Label: "Processing", At: o.ProcessingAt, Done: o.ProcessingAt != nil},
			timelineStep{Label: "Dispatched", At: o.DispatchedAt, Done: o.DispatchedAt != nil},
			timelineStep{Label: "Shipped", At: o.ShippedAt, Done: o.ShippedAt != nil},
			timelineStep{Label: "Delivered", At: o.DeliveredAt, Done: o.DeliveredAt != nil},
		)
		for i := range steps {
			if steps[i].Label == string(o.Status) {
				steps[i].Current = true
			}
		}
	}

	data := struct {
		Steps    []timelineStep
		Courier  string
		Expected *time.Time
	}{
		Steps:    steps,
		Expected: o.ExpectedDelivery,
	}
	if o.CourierName != nil {
		data.Courier = *o.CourierName
	}

	var b strings.Builder
	if err := timelineTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
