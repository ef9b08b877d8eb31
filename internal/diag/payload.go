package diag

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/donaldgifford/memberfmt/internal/ordering"
)

// EncodeSettings serializes ordering settings for a diagnostic payload.
func EncodeSettings(s ordering.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&s); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSettings restores settings written by EncodeSettings. An empty
// payload yields the zero Settings.
func DecodeSettings(payload []byte) (ordering.Settings, error) {
	var s ordering.Settings
	if len(payload) == 0 {
		return s, nil
	}
	if err := msgpack.NewDecoder(bytes.NewReader(payload)).Decode(&s); err != nil {
		return s, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// Options rebuilds the ordering options a diagnostic was produced with.
// A rejected group order falls back to the default, as it did when the
// diagnostic was produced.
func (d Diagnostic) Options() (*ordering.Options, error) {
	if len(d.Payload) == 0 {
		return ordering.DefaultOptions(), nil
	}
	s, err := DecodeSettings(d.Payload)
	if err != nil {
		return nil, err
	}
	opts, _ := ordering.NewOptions(s)
	return opts, nil
}
