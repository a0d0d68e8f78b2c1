package cliutils

import (
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
)

const DateFormat = "2006-01-02"

var (
	InvalidTimeError = func(value string) error {
		return eris.Errorf("invalid time %q, expected RFC3339 (2006-01-02T15:04:05Z) or a date (2006-01-02)", value)
	}
)

// TimeValue is a pflag.Value accepting an RFC3339 timestamp or a UTC date.
type TimeValue struct {
	Time *time.Time
}

var _ pflag.Value = &TimeValue{}

func (t *TimeValue) String() string {
	if t.Time == nil || t.Time.IsZero() {
		return ""
	}
	return t.Time.Format(time.RFC3339)
}

func (t *TimeValue) Set(value string) error {
	parsed, err := ParseTime(value)
	if err != nil {
		return err
	}
	*t.Time = parsed
	return nil
}

func (t *TimeValue) Type() string {
	return "time"
}

func ParseTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(DateFormat, value); err == nil {
		return parsed, nil
	}
	return time.Time{}, InvalidTimeError(value)
}

// SemverValue is a pflag.Value holding an optional semantic version.
type SemverValue struct {
	Version **semver.Version
}

var _ pflag.Value = &SemverValue{}

func (s *SemverValue) String() string {
	if s.Version == nil || *s.Version == nil {
		return ""
	}
	return (*s.Version).Original()
}

func (s *SemverValue) Set(value string) error {
	version, err := semver.NewVersion(value)
	if err != nil {
		return eris.Wrapf(err, "invalid version %q", value)
	}
	*s.Version = version
	return nil
}

func (s *SemverValue) Type() string {
	return "version"
}
