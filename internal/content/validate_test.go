package content

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayloads() map[Kind]map[string]any {
	return map[Kind]map[string]any{
		KindNewsPost:       {"title": "Nyitás", "slug": "nyitas", "body": "Megnyitottunk.", "lang": "hu"},
		KindReview:         {"name": "Emma", "rating": 5, "comment": "Lovely"},
		KindHorse:          {"name": "Villám"},
		KindTeamMember:     {"name": "Kata", "role": "Instructor"},
		KindContactMessage: {"name": "Anna", "email": "a@b.com", "subject": "Hello", "message": "Question"},
		KindBookingRequest: {"name": "Anna", "email": "a@b.com", "date": "2024-06-01", "group_size": 3, "program": "trail ride"},
		KindFaqItem:        {"category": "general", "question": "Open?", "answer": "Yes"},
	}
}

var requiredFields = map[Kind][]string{
	KindNewsPost:       {"title", "slug", "body", "lang"},
	KindReview:         {"name", "rating", "comment"},
	KindHorse:          {"name"},
	KindTeamMember:     {"name", "role"},
	KindContactMessage: {"name", "email", "subject", "message"},
	KindBookingRequest: {"name", "email", "date", "group_size", "program"},
	KindFaqItem:        {"category", "question", "answer"},
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestParse_ValidPayloads(t *testing.T) {
	for kind, payload := range validPayloads() {
		t.Run(kind.String(), func(t *testing.T) {
			rec, err := Parse(kind, mustJSON(t, payload))
			require.NoError(t, err)
			assert.Equal(t, kind, rec.Kind())
		})
	}
}

func TestParse_MissingRequiredField(t *testing.T) {
	for kind, fields := range requiredFields {
		for _, field := range fields {
			t.Run(kind.String()+"/"+field, func(t *testing.T) {
				payload := validPayloads()[kind]
				delete(payload, field)

				_, err := Parse(kind, mustJSON(t, payload))
				require.Error(t, err)
				assert.Equal(t, "must be provided", validationFields(t, err)[field])
			})
		}
	}
}

func TestParse_RatingBoundaries(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr string
	}{
		{0, "must be at least 1"},
		{1, ""},
		{5, ""},
		{6, "must be at most 5"},
	}

	for _, tt := range tests {
		payload := validPayloads()[KindReview]
		payload["rating"] = tt.rating

		_, err := Parse(KindReview, mustJSON(t, payload))
		if tt.wantErr == "" {
			assert.NoError(t, err, "rating %d", tt.rating)
			continue
		}
		require.Error(t, err, "rating %d", tt.rating)
		assert.Equal(t, tt.wantErr, validationFields(t, err)["rating"])
	}
}

func TestParse_GroupSizeBoundaries(t *testing.T) {
	tests := []struct {
		groupSize int
		wantErr   string
	}{
		{0, "must be at least 1"},
		{1, ""},
		{50, ""},
		{51, "must be at most 50"},
	}

	for _, tt := range tests {
		payload := validPayloads()[KindBookingRequest]
		payload["group_size"] = tt.groupSize

		_, err := Parse(KindBookingRequest, mustJSON(t, payload))
		if tt.wantErr == "" {
			assert.NoError(t, err, "group_size %d", tt.groupSize)
			continue
		}
		require.Error(t, err, "group_size %d", tt.groupSize)
		assert.Equal(t, tt.wantErr, validationFields(t, err)["group_size"])
	}
}

func TestParse_Email(t *testing.T) {
	for _, kind := range []Kind{KindContactMessage, KindBookingRequest} {
		t.Run(kind.String(), func(t *testing.T) {
			for _, email := range []string{"a@b.com", "anna.kovacs@taltos.hu"} {
				payload := validPayloads()[kind]
				payload["email"] = email
				_, err := Parse(kind, mustJSON(t, payload))
				assert.NoError(t, err, email)
			}

			for _, email := range []string{"not-an-email", "a@", "@b.com", "a b@c.com"} {
				payload := validPayloads()[kind]
				payload["email"] = email
				_, err := Parse(kind, mustJSON(t, payload))
				require.Error(t, err, email)
				assert.Equal(t, "must be a valid email address", validationFields(t, err)["email"])
			}
		})
	}
}

func TestParse_WrongType(t *testing.T) {
	payload := validPayloads()[KindReview]
	payload["rating"] = "five"
	delete(payload, "comment")

	_, err := Parse(KindReview, mustJSON(t, payload))
	require.Error(t, err)

	fields := validationFields(t, err)
	assert.Equal(t, "must be of type integer", fields["rating"])
	assert.Equal(t, "must be provided", fields["comment"])
}

func TestParse_MalformedBody(t *testing.T) {
	_, err := Parse(KindHorse, []byte(`{"name":`))
	require.Error(t, err)
	assert.Contains(t, validationFields(t, err), "body")

	_, err = Parse(KindHorse, []byte(`["Villám"]`))
	require.Error(t, err)
	assert.Equal(t, "must be a JSON object", validationFields(t, err)["body"])
}

func TestParse_Defaults(t *testing.T) {
	rec, err := Parse(KindNewsPost, mustJSON(t, validPayloads()[KindNewsPost]))
	require.NoError(t, err)
	fields := rec.Fields()
	assert.Equal(t, []string{}, fields["tags"])
	assert.Equal(t, false, fields["featured"])
	assert.Nil(t, fields["published_at"])
	assert.Nil(t, fields["excerpt"])

	for _, kind := range []Kind{KindReview, KindContactMessage, KindBookingRequest, KindFaqItem} {
		rec, err := Parse(kind, mustJSON(t, validPayloads()[kind]))
		require.NoError(t, err)
		assert.Equal(t, DefaultLang, rec.Fields()["lang"], kind.String())
	}

	payload := validPayloads()[KindReview]
	payload["lang"] = "en"
	rec, err = Parse(KindReview, mustJSON(t, payload))
	require.NoError(t, err)
	assert.Equal(t, "en", rec.Fields()["lang"])
}

func TestParse_ExplicitEmptyLang(t *testing.T) {
	for _, lang := range []any{"", nil} {
		payload := validPayloads()[KindReview]
		payload["lang"] = lang

		rec, err := Parse(KindReview, mustJSON(t, payload))
		require.NoError(t, err)
		assert.Equal(t, DefaultLang, rec.Fields()["lang"])
	}
}

func TestParse_RatingWholeFloat(t *testing.T) {
	payload := validPayloads()[KindReview]
	payload["rating"] = json.RawMessage("5.0")

	_, err := Parse(KindReview, mustJSON(t, payload))
	require.Error(t, err)
	assert.Equal(t, "must be of type integer", validationFields(t, err)["rating"])
}

func TestParse_NewsPostOptionalFields(t *testing.T) {
	payload := validPayloads()[KindNewsPost]
	payload["tags"] = []string{"nyár", "tábor"}
	payload["featured"] = true
	payload["published_at"] = "2024-06-01T10:00:00+02:00"
	payload["cover_url"] = "https://example.com/c.jpg"

	rec, err := Parse(KindNewsPost, mustJSON(t, payload))
	require.NoError(t, err)

	fields := rec.Fields()
	assert.Equal(t, []string{"nyár", "tábor"}, fields["tags"])
	assert.Equal(t, true, fields["featured"])
	assert.Equal(t, "https://example.com/c.jpg", fields["cover_url"])
	assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), fields["published_at"])
}

func TestParse_PublishedAt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"DateOnly", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"NaiveDateTime", "2024-06-01T10:30:00", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"WithOffset", "2024-06-01T10:30:00+02:00", time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayloads()[KindNewsPost]
			payload["published_at"] = tt.value

			rec, err := Parse(KindNewsPost, mustJSON(t, payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Fields()["published_at"])
		})
	}
}

func TestParse_PublishedAtInvalid(t *testing.T) {
	t.Run("ReportedOnItsField", func(t *testing.T) {
		payload := validPayloads()[KindNewsPost]
		payload["published_at"] = "2024-13-45"

		_, err := Parse(KindNewsPost, mustJSON(t, payload))
		assert.Equal(t, map[string]string{"published_at": "must be a valid datetime"}, validationFields(t, err))
	})

	t.Run("NotAString", func(t *testing.T) {
		payload := validPayloads()[KindNewsPost]
		payload["published_at"] = 20240601

		_, err := Parse(KindNewsPost, mustJSON(t, payload))
		assert.Equal(t, map[string]string{"published_at": "must be a valid datetime"}, validationFields(t, err))
	})

	t.Run("LaterFieldsStillChecked", func(t *testing.T) {
		_, err := Parse(KindNewsPost, []byte(`{"published_at":"soon","title":"Nyitás","lang":"hu"}`))

		fields := validationFields(t, err)
		assert.Equal(t, "must be a valid datetime", fields["published_at"])
		assert.Equal(t, "must be provided", fields["slug"])
		assert.Equal(t, "must be provided", fields["body"])
		assert.NotContains(t, fields, "title")
		assert.NotContains(t, fields, "lang")
	})

	t.Run("Null", func(t *testing.T) {
		payload := validPayloads()[KindNewsPost]
		payload["published_at"] = nil

		rec, err := Parse(KindNewsPost, mustJSON(t, payload))
		require.NoError(t, err)
		assert.Nil(t, rec.Fields()["published_at"])
	})
}

func TestParse_BookingDateIsFreeText(t *testing.T) {
	payload := validPayloads()[KindBookingRequest]
	payload["date"] = "valamikor júniusban"

	_, err := Parse(KindBookingRequest, mustJSON(t, payload))
	assert.NoError(t, err)
}

func TestFromMap(t *testing.T) {
	rec, err := FromMap(KindHorse, map[string]any{"name": "Csillag", "age": 12})
	require.NoError(t, err)
	assert.Equal(t, 12, rec.Fields()["age"])

	_, err = FromMap(KindHorse, map[string]any{"breed": "Nonius"})
	require.Error(t, err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"rating": "must be at most 5", "email": "must be a valid email address"}}
	assert.Equal(t, "validation failed: email: must be a valid email address; rating: must be at most 5", err.Error())
}

func TestKinds(t *testing.T) {
	assert.Equal(t,
		[]string{"newspost", "review", "horse", "teammember", "contactmessage", "bookingrequest", "faqitem"},
		Collections(),
	)

	for _, k := range Kinds() {
		got, ok := KindByCollection(k.Collection())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := KindByCollection("newsposts")
	assert.False(t, ok)
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "", Kind(99).Collection())

	_, err := NewRecord(Kind(99))
	assert.Error(t, err)
}
