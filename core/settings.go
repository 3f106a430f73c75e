package core

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// maxPayloadSize is the largest UDP datagram minus the echo header.
	maxPayloadSize = 65507 - 8

	minUnprivilegedInterval = 200 * time.Millisecond
	minPrivilegedInterval   = 10 * time.Millisecond
	maxInterval             = 24 * time.Hour
)

// Settings contains all configurable properties of a ping run.
type Settings struct {
	// Count is the amount of echo requests sent before exiting, zero or less means no limit.
	Count int `yaml:"count"`

	// Interval is the time between the start of consecutive pings.
	Interval time.Duration `yaml:"interval"`

	// Timeout is the time to wait for each reply.
	Timeout time.Duration `yaml:"timeout"`

	// ResolveTimeout is the time to wait for the host to resolve.
	ResolveTimeout time.Duration `yaml:"resolve_timeout"`

	// PayloadSize is the number of data bytes sent after the echo header.
	PayloadSize int `yaml:"payload_size"`

	// StartSequence is the sequence number of the first echo request.
	StartSequence uint16 `yaml:"start_sequence"`

	// Identifier is the echo identifier. Unprivileged sockets have it replaced by the kernel.
	Identifier uint16 `yaml:"identifier"`

	// IsPrivileged defines if privileged (raw ICMP sockets) or unprivileged (datagram-oriented) mode is used.
	IsPrivileged bool `yaml:"privileged"`

	// CacheSize is the number of latest results kept for display.
	CacheSize int `yaml:"cache_size"`

	// LoggingLevel is a logrus level, from 0 (panic) to 6 (trace).
	LoggingLevel uint32 `yaml:"logging_level"`

	// MetricsAddress is the listen address of the prometheus endpoint, disabled when empty.
	MetricsAddress string `yaml:"metrics_address"`
}

// DefaultSettings returns the default settings for a ping run, change as you wish.
func DefaultSettings() *Settings {
	return &Settings{
		Count:          0,
		Interval:       time.Second,
		Timeout:        time.Second,
		ResolveTimeout: 5 * time.Second,
		PayloadSize:    0,
		StartSequence:  0,
		Identifier:     0,
		IsPrivileged:   false,
		CacheSize:      10,
		LoggingLevel:   uint32(log.WarnLevel),
		MetricsAddress: "",
	}
}

// LoadSettings reads YAML settings from path over the defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings parses YAML settings over the defaults and validates them.
func ParseSettings(data []byte) (*Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Validate checks that every setting is within its allowed range.
func (s *Settings) Validate() error {
	return s.validate()
}

func (s *Settings) validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.ResolveTimeout <= 0 {
		return fmt.Errorf("resolve timeout must be positive, got %s", s.ResolveTimeout)
	}

	minInterval := minUnprivilegedInterval
	if s.IsPrivileged {
		minInterval = minPrivilegedInterval
	}
	if s.Interval < minInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minInterval, s.Interval)
	}
	if s.Interval > maxInterval {
		return fmt.Errorf("interval must be at most %s, got %s", maxInterval, s.Interval)
	}

	if s.PayloadSize < 0 || s.PayloadSize > maxPayloadSize {
		return fmt.Errorf("payload size must be between 0 and %d, got %d", maxPayloadSize, s.PayloadSize)
	}
	if s.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", s.CacheSize)
	}
	if s.LoggingLevel > uint32(log.TraceLevel) {
		return fmt.Errorf("logging level must be at most %d, got %d", log.TraceLevel, s.LoggingLevel)
	}
	return nil
}

// Payload returns PayloadSize bytes of the classic ping pattern.
func (s *Settings) Payload() []byte {
	if s.PayloadSize == 0 {
		return nil
	}
	b := make([]byte, s.PayloadSize)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// StreamOptions returns the stream configuration the settings describe.
func (s *Settings) StreamOptions() StreamOptions {
	return StreamOptions{
		Timeout:       s.Timeout,
		Interval:      s.Interval,
		Identifier:    s.Identifier,
		StartSequence: s.StartSequence,
		Payload:       s.Payload(),
		Count:         s.Count,
	}
}
