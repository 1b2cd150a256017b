// Package session encodes the tracker's state into shareable tokens.
// A token carries the full transaction history and current price, compressed
// and encrypted, so a session can be rebuilt on another device from a URL
// without any server-side account.
package session

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/model"
)

// payloadVersion guards against decoding tokens from an incompatible format.
const payloadVersion = 1

// tokenTTL bounds how long a share link stays valid.
const tokenTTL = 365 * 24 * time.Hour

// Payload is the shareable session state.
type Payload struct {
	Version      int                 `json:"v"`
	Transactions []model.Transaction `json:"transactions"`
	CurrentPrice float64             `json:"currentPrice"`
}

// Codec encrypts and decrypts session payloads with a fernet key.
type Codec struct {
	keys []*fernet.Key
}

// NewCodec creates a Codec from a base64-encoded fernet key.
func NewCodec(encodedKey string) (*Codec, error) {
	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return &Codec{keys: keys}, nil
}

// Encode serializes, compresses, and encrypts a payload into a URL-safe token.
func (c *Codec) Encode(p Payload) (string, error) {
	p.Version = payloadVersion

	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session payload: %w", err)
	}

	var compressed bytes.Buffer
	zw, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("failed to compress session payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compression: %w", err)
	}

	token, err := fernet.EncryptAndSign(compressed.Bytes(), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session payload: %w", err)
	}

	return string(token), nil
}

// Decode verifies and unpacks a token produced by Encode.
// Returns ErrInvalidShareToken for tampered, expired, or malformed tokens.
func (c *Codec) Decode(token string) (Payload, error) {
	compressed := fernet.VerifyAndDecrypt([]byte(token), tokenTTL, c.keys)
	if compressed == nil {
		return Payload{}, apperrors.ErrInvalidShareToken
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidShareToken, err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidShareToken, err)
	}
	if p.Version != payloadVersion {
		return Payload{}, fmt.Errorf("%w: unsupported payload version %d", apperrors.ErrInvalidShareToken, p.Version)
	}

	return p, nil
}
