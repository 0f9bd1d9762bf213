package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func signHeader(payload []byte, secret string, signedAt time.Time) string {
	ts := signedAt.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignatureAcceptsValid(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()
	header := signHeader(payload, testSecret, now)

	err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance, now)
	require.NoError(t, err)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	header := signHeader(payload, "whsec_other", now)

	err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance, now)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	header := signHeader(payload, testSecret, now)

	err := VerifySignature([]byte(`{"id":"evt_2"}`), header, testSecret, DefaultSignatureTolerance, now)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	header := signHeader(payload, testSecret, now.Add(-10*time.Minute))

	err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance, now)
	require.ErrorIs(t, err, ErrSignatureTooOld)
}

func TestVerifySignatureMissingHeader(t *testing.T) {
	err := VerifySignature([]byte(`{}`), "", testSecret, DefaultSignatureTolerance, time.Now())
	require.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	cases := []string{
		"garbage",
		"t=notanumber,v1=abcd",
		"v1=deadbeef",
		"t=1700000000",
	}

	for _, header := range cases {
		err := VerifySignature([]byte(`{}`), header, testSecret, DefaultSignatureTolerance, time.Now())
		assert.ErrorIs(t, err, ErrMalformedSignature, "header %q", header)
	}
}

func TestVerifySignatureAcceptsSecondSignature(t *testing.T) {
	// Stripe sends multiple v1 entries during secret rotation; any match wins.
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	ts := now.Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	header := fmt.Sprintf("t=%d,v1=%s,v1=%s", ts, "00ff00ff", valid)
	err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance, now)
	require.NoError(t, err)
}
