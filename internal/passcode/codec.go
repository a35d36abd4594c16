// Package passcode turns pass payloads into scannable QR codes and back.
package passcode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const (
	// QRSize is the edge length of the generated PNG in pixels.
	QRSize = 256

	dataURLPrefix = "data:image/png;base64,"
)

// Codec implements ports.PassEncoder. With a signing key every payload
// carries an HMAC-SHA256 signature and Decode rejects payloads whose
// signature is missing or wrong. Without a key signatures are neither
// written nor checked.
type Codec struct {
	key []byte
}

var _ ports.PassEncoder = (*Codec)(nil)

func NewCodec(signingKey string) *Codec {
	c := &Codec{}
	if signingKey != "" {
		c.key = []byte(signingKey)
	}
	return c
}

// Signed reports whether payloads are signed.
func (c *Codec) Signed() bool { return len(c.key) > 0 }

func (c *Codec) Encode(p domain.PassPayload) (*ports.EncodedPass, error) {
	p.Signature = ""
	if c.Signed() {
		sig, err := c.sign(p)
		if err != nil {
			return nil, err
		}
		p.Signature = sig
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal pass payload: %w", err)
	}

	png, err := qrcode.Encode(string(raw), qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	return &ports.EncodedPass{
		Payload: string(raw),
		QRCode:  dataURLPrefix + base64.StdEncoding.EncodeToString(png),
		PNG:     png,
	}, nil
}

func (c *Codec) Decode(raw string) (domain.PassPayload, error) {
	var p domain.PassPayload
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p, domain.Validationf("qr payload is required")
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.PassPayload{}, domain.Validationf("invalid qr payload")
	}
	if p.PassID == "" {
		return domain.PassPayload{}, domain.Validationf("qr payload is missing the pass id")
	}

	if c.Signed() {
		got := p.Signature
		p.Signature = ""
		want, err := c.sign(p)
		if err != nil {
			return domain.PassPayload{}, err
		}
		if got == "" || !hmac.Equal([]byte(got), []byte(want)) {
			return domain.PassPayload{}, domain.Validationf("qr payload signature is invalid")
		}
		p.Signature = got
	}
	return p, nil
}

// sign computes the signature over the unsigned serialized payload.
func (c *Codec) sign(p domain.PassPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal pass payload: %w", err)
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
