// Package config carries the deployment-wide parameters every node needs:
// the structured reference string, the polynomial degree (fault threshold)
// and the participant count. A Config is read-only after construction; the
// cryptographic core never consults the filesystem itself — only config.Load
// does, as ambient deployment-bootstrap tooling.
package config

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"go.dedis.ch/kyber/v4/pairing"
	"gopkg.in/yaml.v3"

	"github.com/dedis/scrape-pvss/srs"
)

// Config holds the shared, immutable parameters of a PVSS deployment.
type Config struct {
	SRS *srs.SRS
	T   int // polynomial degree / fault threshold
	N   int // number of participants
}

// New validates and builds a Config in-process, without touching the
// filesystem. Useful for tests and for deployments that provision the SRS
// out of band.
func New(s *srs.SRS, t, n int) (*Config, error) {
	c := &Config{SRS: s, T: t, N: n}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces t < n, equivalently n >= t+1: reconstruction needs at
// least t+1 of the n participants.
func (c *Config) Validate() error {
	if c.T < 0 || c.N <= 0 {
		return fmt.Errorf("config: t and n must be non-negative, n > 0 (got t=%d, n=%d)", c.T, c.N)
	}
	if c.T >= c.N {
		return fmt.Errorf("config: threshold t=%d must be strictly less than n=%d", c.T, c.N)
	}
	return nil
}

// MarshalBinary encodes the config canonically as t (8 bytes, big-endian)
// || n (8 bytes, big-endian) || srs. This is the wire/at-rest format
// consumed by peers over a canonical channel; Load/Save instead use a YAML
// descriptor for operator-facing deployment bootstrap.
func (c *Config) MarshalBinary() ([]byte, error) {
	srsBytes, err := c.SRS.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 16, 16+len(srsBytes))
	binary.BigEndian.PutUint64(out[0:8], uint64(c.T))
	binary.BigEndian.PutUint64(out[8:16], uint64(c.N))
	return append(out, srsBytes...), nil
}

// UnmarshalBinary decodes a config previously produced by MarshalBinary
// against the given pairing suite, and validates its invariants.
func (c *Config) UnmarshalBinary(suite pairing.Suite, data []byte) error {
	if len(data) < 16 {
		return io.ErrUnexpectedEOF
	}
	c.T = int(binary.BigEndian.Uint64(data[0:8]))
	c.N = int(binary.BigEndian.Uint64(data[8:16]))

	var s srs.SRS
	if err := s.UnmarshalBinary(suite, data[16:]); err != nil {
		return err
	}
	c.SRS = &s
	return c.Validate()
}

// fileConfig mirrors the on-disk YAML descriptor: the SRS is stored as a
// hex-encoded canonical byte string (srs.SRS.MarshalBinary).
type fileConfig struct {
	Threshold    int    `yaml:"threshold"`
	Participants int    `yaml:"participants"`
	SRSHex       string `yaml:"srs"`
}

// Load reads a YAML deployment descriptor from path and decodes the SRS
// against the given pairing suite.
func Load(path string, suite pairing.Suite) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	srsBytes, err := hex.DecodeString(fc.SRSHex)
	if err != nil {
		return nil, fmt.Errorf("config: decoding srs field: %w", err)
	}

	var s srs.SRS
	if err := s.UnmarshalBinary(suite, srsBytes); err != nil {
		return nil, fmt.Errorf("config: decoding srs: %w", err)
	}

	return New(&s, fc.Threshold, fc.Participants)
}

// Save writes the Config back out to a YAML descriptor at path, in the
// format Load expects.
func Save(path string, c *Config) error {
	srsBytes, err := c.SRS.MarshalBinary()
	if err != nil {
		return fmt.Errorf("config: encoding srs: %w", err)
	}

	fc := fileConfig{
		Threshold:    c.T,
		Participants: c.N,
		SRSHex:       hex.EncodeToString(srsBytes),
	}

	out, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}

	return os.WriteFile(path, out, 0o600)
}
