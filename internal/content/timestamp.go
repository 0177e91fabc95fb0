package content

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order; inputs without a zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Timestamp is a datetime field that also accepts a plain date.
// Decoding never fails: an unparsable value is kept and reported by Validate
// against the field it came from.
type Timestamp struct {
	time.Time
	invalid string
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.invalid = string(b)
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			t.invalid = ""
			return nil
		}
	}

	t.invalid = s
	return nil
}

// Valid reports whether the decoded input was a recognised datetime.
func (t Timestamp) Valid() bool {
	return t.invalid == ""
}

// fieldChecker is implemented by records with checks that struct tags cannot express.
type fieldChecker interface {
	checkFields(verr *ValidationError)
}

func (n *NewsPost) checkFields(verr *ValidationError) {
	if n.PublishedAt != nil && !n.PublishedAt.Valid() {
		verr.add("published_at", "must be a valid datetime")
	}
}
