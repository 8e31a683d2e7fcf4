// Package calendarsync pushes read-only schedule snapshots to the platform's
// calendar-federation adapter. Delivery is best-effort and asynchronous; a
// failed push never affects the schedule that produced it.
package calendarsync

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
)

type Publisher struct {
	baseURL string
	client  *http.Client
}

func NewPublisher(baseURL string) *Publisher {
	return &Publisher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PushSnapshot serializes the schedule as an iCalendar event and posts it to
// the federation adapter in the background.
func (p *Publisher) PushSnapshot(s schedule.Schedule) {
	if p == nil || p.baseURL == "" {
		return
	}
	go p.push(s)
}

func (p *Publisher) push(s schedule.Schedule) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//wellura//staff-scheduling//EN")

	event := cal.AddEvent(s.ID)
	event.SetDtStampTime(time.Now())
	event.SetStartAt(s.StartTime)
	event.SetEndAt(s.EndTime)
	event.SetSummary(s.Type)
	event.SetProperty(ics.ComponentPropertyStatus, string(s.Status))
	if s.Location != nil {
		event.SetLocation(*s.Location)
	}
	if s.Notes != nil {
		event.SetDescription(*s.Notes)
	}
	if s.RecurrenceRule != nil && *s.RecurrenceRule != "" {
		event.AddRrule(*s.RecurrenceRule)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := p.baseURL + "/calendar/schedules/" + s.ID
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBufferString(cal.Serialize()))
	if err != nil {
		slog.Error("failed to build calendar sync request", "schedule_id", s.ID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "text/calendar")

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("calendar sync push failed", "schedule_id", s.ID, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Warn("calendar sync push rejected", "schedule_id", s.ID, "status", resp.StatusCode)
	}
}
