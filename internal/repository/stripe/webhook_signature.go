package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureTolerance bounds how old a signed payload may be before it
// is rejected, matching Stripe's recommended window.
const DefaultSignatureTolerance = 5 * time.Minute

var (
	ErrMissingSignature   = errors.New("missing stripe signature header")
	ErrInvalidSignature   = errors.New("invalid stripe signature")
	ErrSignatureTooOld    = errors.New("stripe signature timestamp outside tolerance")
	ErrMalformedSignature = errors.New("malformed stripe signature header")
)

// VerifySignature checks a Stripe-Signature header of the form
// "t=<unix>,v1=<hex hmac>[,v1=...]" against the raw request body. The signed
// payload is "<t>.<body>" with HMAC-SHA256 under the webhook secret.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	if header == "" {
		return ErrMissingSignature
	}

	var timestamp int64
	var signatures [][]byte

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return ErrMalformedSignature
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrMalformedSignature
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(kv[1])
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return ErrMalformedSignature
	}

	signedAt := time.Unix(timestamp, 0)
	if tolerance > 0 && now.Sub(signedAt) > tolerance {
		return ErrSignatureTooOld
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}

	return ErrInvalidSignature
}
