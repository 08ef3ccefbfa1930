package paymentprovider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"type":"checkout.session.completed"}`)
	sig := Sign("whsec", body)

	assert.True(t, VerifySignature("whsec", body, sig))
	assert.False(t, VerifySignature("other", body, sig))
	assert.False(t, VerifySignature("whsec", append(body, ' '), sig))
	assert.False(t, VerifySignature("whsec", body, ""))
	assert.False(t, VerifySignature("", body, Sign("", body)))
}

func eventWith(id string, metadata map[string]string) Event {
	var e Event
	e.Type = EventCheckoutCompleted
	e.Data.Object.ID = id
	e.Data.Object.PaymentStatus = PaymentStatusPaid
	e.Data.Object.Metadata = metadata
	return e
}

func TestEvent_CheckoutCompleted(t *testing.T) {
	raw := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid","metadata":{"korisnikId":"u-1","kursIds":"[\"c-1\",\"c-2\"]"}}}}`
	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	got, err := e.CheckoutCompleted()
	require.NoError(t, err)
	assert.Equal(t, "cs_1", got.SessionID)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, []string{"c-1", "c-2"}, got.CourseIDs)
}

func TestEvent_CheckoutCompleted_Malformed(t *testing.T) {
	cases := map[string]Event{
		"no session id":   eventWith("", map[string]string{"korisnikId": "u", "kursIds": `["c"]`}),
		"no user":         eventWith("cs", map[string]string{"kursIds": `["c"]`}),
		"bad course list": eventWith("cs", map[string]string{"korisnikId": "u", "kursIds": "c-1"}),
		"empty courses":   eventWith("cs", map[string]string{"korisnikId": "u", "kursIds": "[]"}),
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.CheckoutCompleted()
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}

func TestEvent_CheckoutCompleted_NotPaid(t *testing.T) {
	for _, status := range []string{"unpaid", "no_payment_required", ""} {
		t.Run("status "+status, func(t *testing.T) {
			e := eventWith("cs_1", map[string]string{"korisnikId": "u-1", "kursIds": `["c-1"]`})
			e.Data.Object.PaymentStatus = status

			_, err := e.CheckoutCompleted()
			assert.ErrorIs(t, err, ErrNotPaid)
			assert.NotErrorIs(t, err, ErrMalformedEvent)
		})
	}
}
