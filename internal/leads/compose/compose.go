// Package compose renders a lead record into the notification sent to the business.
package compose

import (
	"bytes"
	"fmt"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"lead-webhook/internal/leads"
)

// MaxSubjectRunes bounds the subject line; longer subjects are cut and end in "...".
const MaxSubjectRunes = 200

// TimestampLayout renders the call time as month/day/year with a 12-hour clock.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Notification is the composed message, ready for any delivery provider.
type Notification struct {
	Subject string
	HTML    string
	Text    string
}

// Options configures a Composer. Zero values fall back to the defaults below.
type Options struct {
	BusinessName string
	Location     *time.Location
	ZoneLabel    string
	Now          func() time.Time
}

const (
	defaultBusinessName = "Hello Movers"
	defaultZoneLabel    = "Eastern Time"
)

// Composer is immutable after construction and safe for concurrent use.
type Composer struct {
	businessName string
	location     *time.Location
	zoneLabel    string
	now          func() time.Time
}

func New(opts Options) *Composer {
	c := &Composer{
		businessName: opts.BusinessName,
		location:     opts.Location,
		zoneLabel:    opts.ZoneLabel,
		now:          opts.Now,
	}
	if c.businessName == "" {
		c.businessName = defaultBusinessName
	}
	if c.location == nil {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		c.location = loc
	}
	if c.zoneLabel == "" {
		c.zoneLabel = defaultZoneLabel
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

type view struct {
	BusinessName string
	Contact      []leads.Entry
	Move         []leads.Entry
	ReceivedAt   string
	ZoneLabel    string
}

// Compose renders rec with the call time at. It has no failure modes: the
// templates are parsed at init and render into memory.
func (c *Composer) Compose(rec leads.Record, at time.Time) Notification {
	v := view{
		BusinessName: c.businessName,
		Contact:      rec.Section(leads.SectionContact),
		Move:         rec.Section(leads.SectionMove),
		ReceivedAt:   FormatTimestamp(at, c.location),
		ZoneLabel:    c.zoneLabel,
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, v); err != nil {
		panic(fmt.Sprintf("compose: render html: %v", err))
	}
	if err := textTmpl.Execute(&text, v); err != nil {
		panic(fmt.Sprintf("compose: render text: %v", err))
	}

	return Notification{
		Subject: Subject(rec),
		HTML:    html.String(),
		Text:    text.String(),
	}
}

// ComposeNow is Compose stamped with the composer's clock.
func (c *Composer) ComposeNow(rec leads.Record) Notification {
	return c.Compose(rec, c.now())
}

// Subject builds "New Lead: <caller_name> - <reason_for_calling>", cut to MaxSubjectRunes.
func Subject(rec leads.Record) string {
	return clip(fmt.Sprintf("New Lead: %s - %s", rec.Get(leads.KeyCallerName), rec.Get(leads.KeyReasonForCalling)), MaxSubjectRunes)
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func FormatTimestamp(at time.Time, loc *time.Location) string {
	return at.In(loc).Format(TimestampLayout)
}
