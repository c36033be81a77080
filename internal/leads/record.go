// Package leads holds the lead record built from one receptionist call.
package leads

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Known collected-data keys.
const (
	KeyCallerName       = "caller_name"
	KeyPhoneNumber      = "phone_number"
	KeyEmailAddress     = "email_address"
	KeyReasonForCalling = "reason_for_calling"
	KeyPropertyType     = "property_type"
	KeyBedrooms         = "number_of_bedrooms"
	KeyPickupZip        = "pickup_zip_code"
	KeyDeliveryZip      = "delivery_zip_code"
	KeyMoveDate         = "move_date"
)

// Placeholders substituted for absent values.
const (
	PlaceholderContact = "Not provided"
	PlaceholderMove    = "N/A"
)

type Section string

const (
	SectionContact Section = "contact"
	SectionMove    Section = "move"
)

// FieldSpec describes one known field and how it is displayed.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Section     Section
}

// KnownFields lists the fields in display order.
var KnownFields = []FieldSpec{
	{Key: KeyCallerName, Label: "Name", Placeholder: PlaceholderContact, Section: SectionContact},
	{Key: KeyPhoneNumber, Label: "Phone", Placeholder: PlaceholderContact, Section: SectionContact},
	{Key: KeyEmailAddress, Label: "Email", Placeholder: PlaceholderContact, Section: SectionContact},
	{Key: KeyReasonForCalling, Label: "Reason for Call", Placeholder: PlaceholderContact, Section: SectionContact},
	{Key: KeyPropertyType, Label: "Property Type", Placeholder: PlaceholderMove, Section: SectionMove},
	{Key: KeyBedrooms, Label: "Bedrooms", Placeholder: PlaceholderMove, Section: SectionMove},
	{Key: KeyPickupZip, Label: "Pickup ZIP", Placeholder: PlaceholderMove, Section: SectionMove},
	{Key: KeyDeliveryZip, Label: "Delivery ZIP", Placeholder: PlaceholderMove, Section: SectionMove},
	{Key: KeyMoveDate, Label: "Move Date", Placeholder: PlaceholderMove, Section: SectionMove},
}

// Fields is the flat collected-data mapping located in a payload. Values keep
// their decoded JSON types; a nil value never appears.
type Fields map[string]interface{}

// Record maps every known key to its display string.
type Record map[string]string

// NewRecord reads the known keys from fields. Only an absent key takes the
// placeholder; present values such as "" or 0 are kept as given.
func NewRecord(fields Fields) Record {
	rec := make(Record, len(KnownFields))
	for _, f := range KnownFields {
		v, ok := fields[f.Key]
		if !ok || v == nil {
			rec[f.Key] = f.Placeholder
			continue
		}
		rec[f.Key] = Stringify(v)
	}
	return rec
}

// Get returns the value for key, or "" for keys outside KnownFields.
func (r Record) Get(key string) string {
	return r[key]
}

// Section returns the fields of one section in display order.
func (r Record) Section(s Section) []Entry {
	var out []Entry
	for _, f := range KnownFields {
		if f.Section == s {
			out = append(out, Entry{Label: f.Label, Value: r[f.Key]})
		}
	}
	return out
}

// Entry is one labelled value ready for display.
type Entry struct {
	Label string
	Value string
}

// Stringify renders a decoded JSON value the way it should read in a notification.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}
