package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// SignatureHeader carries the request signature
	SignatureHeader = "X-Slack-Signature"

	// TimestampHeader carries the unix timestamp the signature was computed with
	TimestampHeader = "X-Slack-Request-Timestamp"

	// Version is the signing scheme version, used as base string and signature prefix
	Version = "v0"

	// MaxSkew is the largest accepted distance between the timestamp and now
	MaxSkew = 300 * time.Second
)

var (
	ErrMissingHeader     = errors.New("signature or timestamp header is missing")
	ErrInvalidTimestamp  = errors.New("timestamp is not a unix time")
	ErrStaleTimestamp    = errors.New("timestamp outside allowed skew")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Sign computes the signature header value for body at timestamp
// The signed content is: v0:{timestamp}:{body}
func Sign(body []byte, timestamp string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(Version + ":" + timestamp + ":"))
	mac.Write(body)
	return Version + "=" + hex.EncodeToString(mac.Sum(nil))
}

// Check validates a signed request and reports why it is rejected
func Check(body []byte, signatureHeader, timestampHeader string, secret []byte, now time.Time) error {
	if signatureHeader == "" || timestampHeader == "" {
		return ErrMissingHeader
	}

	ts, err := strconv.ParseInt(timestampHeader, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestampHeader)
	}

	// Compared in whole seconds, a Duration saturates for far away timestamps
	n := now.Unix()
	window := int64(MaxSkew / time.Second)
	if ts < n-window || ts > n+window {
		return fmt.Errorf("%w: %d is more than %s from %d", ErrStaleTimestamp, ts, MaxSkew, n)
	}

	expected := Sign(body, timestampHeader, secret)

	// hmac.Equal runs in constant time for equal length inputs
	if !hmac.Equal([]byte(expected), []byte(signatureHeader)) {
		return ErrSignatureMismatch
	}

	return nil
}

// Verify reports whether the request is authentic
func Verify(body []byte, signatureHeader, timestampHeader string, secret []byte, now time.Time) bool {
	return Check(body, signatureHeader, timestampHeader, secret, now) == nil
}

// Timestamp formats t the way the timestamp header carries it
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
