package cronparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

// Off disables a schedule.
const Off = "off"

var ErrDisabled = errors.New("schedule is disabled")

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule is a parsed five-field cron spec or descriptor such as @hourly.
type Schedule struct {
	spec     string
	schedule cron.Schedule
}

// Parse parses spec. Specs without a CRON_TZ=/TZ= prefix are evaluated in UTC.
// An empty spec or "off" returns ErrDisabled.
func Parse(spec string) (*Schedule, error) {
	spec = strings.TrimSpace(spec)
	if IsDisabled(spec) {
		return nil, ErrDisabled
	}

	schedule, err := _parser.Parse(buildSpec(spec))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return &Schedule{
		spec:     spec,
		schedule: schedule,
	}, nil
}

// IsDisabled reports whether spec turns the schedule off.
func IsDisabled(spec string) bool {
	spec = strings.TrimSpace(spec)

	return spec == "" || strings.EqualFold(spec, Off)
}

// Next returns the next occurrence strictly after after, zero for a nil
// (disabled) schedule.
func (s *Schedule) Next(after time.Time) time.Time {
	if s == nil {
		return time.Time{}
	}

	return s.schedule.Next(after)
}

func (s *Schedule) String() string {
	return s.spec
}

func buildSpec(spec string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	return "CRON_TZ=UTC " + spec
}
