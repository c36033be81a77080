package compose

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-webhook/internal/leads"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestSubject(t *testing.T) {
	rec := leads.NewRecord(leads.Fields{
		leads.KeyCallerName:       "Jane Doe",
		leads.KeyReasonForCalling: "moving quote",
	})
	assert.Equal(t, "New Lead: Jane Doe - moving quote", Subject(rec))
}

func TestSubject_Placeholders(t *testing.T) {
	rec := leads.NewRecord(leads.Fields{})
	assert.Equal(t, "New Lead: Not provided - Not provided", Subject(rec))
}

func TestSubject_LongValuesAreCut(t *testing.T) {
	tests := []struct {
		name   string
		fields leads.Fields
	}{
		{"long caller name", leads.Fields{leads.KeyCallerName: strings.Repeat("J", 1000)}},
		{"long reason", leads.Fields{leads.KeyReasonForCalling: strings.Repeat("quote ", 300)}},
		{"multibyte reason", leads.Fields{leads.KeyReasonForCalling: strings.Repeat("é", 500)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subject(leads.NewRecord(tt.fields))
			assert.Equal(t, MaxSubjectRunes, utf8.RuneCountInString(got))
			assert.True(t, utf8.ValidString(got))
			assert.True(t, strings.HasPrefix(got, "New Lead: "))
			assert.True(t, strings.HasSuffix(got, "..."))
		})
	}
}

func TestSubject_AtLimitIsKept(t *testing.T) {
	name := strings.Repeat("a", MaxSubjectRunes-len("New Lead:  - Not provided"))
	got := Subject(leads.NewRecord(leads.Fields{leads.KeyCallerName: name}))
	assert.Equal(t, "New Lead: "+name+" - Not provided", got)
	assert.Len(t, got, MaxSubjectRunes)
}

func TestFormatTimestamp(t *testing.T) {
	loc := newYork(t)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"standard time", time.Date(2026, 3, 5, 18, 4, 9, 0, time.UTC), "3/5/2026, 1:04:09 PM"},
		{"daylight time", time.Date(2026, 7, 4, 16, 0, 0, 0, time.UTC), "7/4/2026, 12:00:00 PM"},
		{"after midnight", time.Date(2026, 1, 1, 5, 30, 0, 0, time.UTC), "1/1/2026, 12:30:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.at, loc))
		})
	}
}

func TestCompose_RendersAllFields(t *testing.T) {
	c := New(Options{Location: newYork(t)})
	rec := leads.NewRecord(leads.Fields{
		leads.KeyCallerName:   "Jane Doe",
		leads.KeyPhoneNumber:  "555-1234",
		leads.KeyBedrooms:     "3",
		leads.KeyPickupZip:    "02134",
		leads.KeyDeliveryZip:  "10001",
		leads.KeyPropertyType: "apartment",
	})

	n := c.Compose(rec, time.Date(2026, 3, 5, 18, 4, 9, 0, time.UTC))

	assert.Equal(t, "New Lead: Jane Doe - Not provided", n.Subject)
	for _, want := range []string{
		"New Lead - Hello Movers",
		"Contact Information",
		"Move Details",
		"Jane Doe",
		"555-1234",
		"02134",
		"10001",
		"apartment",
		"3/5/2026, 1:04:09 PM (Eastern Time)",
		"This is an automated notification from your Hello Movers AI Receptionist",
	} {
		assert.Contains(t, n.HTML, want)
	}
	assert.True(t, strings.HasPrefix(n.HTML, "<!DOCTYPE html>"))

	assert.Contains(t, n.Text, "Name: Jane Doe")
	assert.Contains(t, n.Text, "Email: Not provided")
	assert.Contains(t, n.Text, "Move Date: N/A")
	assert.Contains(t, n.Text, "Call Received: 3/5/2026, 1:04:09 PM (Eastern Time)")
}

func TestCompose_LabelsInDisplayOrder(t *testing.T) {
	n := New(Options{Location: time.UTC}).Compose(leads.NewRecord(nil), time.Unix(0, 0))

	last := -1
	for _, f := range leads.KnownFields {
		idx := strings.Index(n.Text, f.Label+":")
		require.GreaterOrEqual(t, idx, 0, f.Label)
		assert.Greater(t, idx, last, f.Label)
		last = idx
	}
}

func TestCompose_EscapesHTML(t *testing.T) {
	rec := leads.NewRecord(leads.Fields{leads.KeyCallerName: "<b>Jane & Co</b>"})
	n := New(Options{Location: time.UTC}).Compose(rec, time.Unix(0, 0))

	assert.NotContains(t, n.HTML, "<b>Jane")
	assert.Contains(t, n.HTML, "&lt;b&gt;Jane &amp; Co&lt;/b&gt;")
	assert.Contains(t, n.Text, "Name: <b>Jane & Co</b>")
	assert.Equal(t, "New Lead: <b>Jane & Co</b> - Not provided", n.Subject)
}

func TestCompose_CustomBusinessAndZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	c := New(Options{BusinessName: "Acme Moving", Location: loc, ZoneLabel: "Pacific Time"})
	n := c.Compose(leads.NewRecord(nil), time.Date(2026, 3, 5, 18, 4, 9, 0, time.UTC))

	assert.Contains(t, n.HTML, "New Lead - Acme Moving")
	assert.Contains(t, n.HTML, "3/5/2026, 10:04:09 AM (Pacific Time)")
	assert.NotContains(t, n.HTML, "Hello Movers")
}

func TestComposeNow_UsesClock(t *testing.T) {
	fixed := time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC)
	c := New(Options{Now: func() time.Time { return fixed }})

	n := c.ComposeNow(leads.NewRecord(nil))
	assert.Contains(t, n.Text, "10/16/2026, 10:00:00 AM (Eastern Time)")
}
