package routing

import (
	"fmt"
	"strings"
)

const (
	ruleSeparator    = ","
	segmentSeparator = "/"
	channelSeparator = "="
)

// Rule routes restarts of matching containers to Channel.
// An empty Channel matches but disables notification.
type Rule struct {
	Namespace Pattern
	Pod       Pattern
	Container Pattern
	Channel   string
}

// String renders the rule back into namespace/pod/container=channel form.
func (r Rule) String() string {
	return r.Namespace.String() + segmentSeparator +
		r.Pod.String() + segmentSeparator +
		r.Container.String() + channelSeparator + r.Channel
}

func (r Rule) matches(namespace, pod, container string) bool {
	return r.Namespace.Match(namespace) &&
		r.Pod.Match(pod) &&
		r.Container.Match(container)
}

// ParseRule parses a single namespace/pod/container=channel rule.
func ParseRule(raw string) (Rule, error) {
	namespace, rest, ok := strings.Cut(raw, segmentSeparator)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q: missing %q after namespace", ErrInvalidRule, raw, segmentSeparator)
	}

	pod, rest, ok := strings.Cut(rest, segmentSeparator)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q: missing %q after pod", ErrInvalidRule, raw, segmentSeparator)
	}

	container, channel, ok := strings.Cut(rest, channelSeparator)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q: missing %q before channel", ErrInvalidRule, raw, channelSeparator)
	}

	return Rule{
		Namespace: CompilePattern(namespace),
		Pod:       CompilePattern(pod),
		Container: CompilePattern(container),
		Channel:   channel,
	}, nil
}

// Router holds rules in priority order. The first matching rule wins.
type Router struct {
	rules []Rule
}

// New builds a router from already parsed rules.
func New(rules ...Rule) *Router {
	return &Router{rules: rules}
}

// Parse parses a comma separated list of rules. Any malformed rule fails the
// whole config.
func Parse(config string) (*Router, error) {
	if strings.TrimSpace(config) == "" {
		return nil, ErrEmptyConfig
	}

	raws := strings.Split(config, ruleSeparator)
	rules := make([]Rule, 0, len(raws))

	for i, raw := range raws {
		rule, err := ParseRule(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i+1, err)
		}

		rules = append(rules, rule)
	}

	return New(rules...), nil
}

// Resolve returns the channel for the container, or false when no rule
// matches or the first matching rule disables notification.
func (r *Router) Resolve(namespace, pod, container string) (string, bool) {
	for i := range r.rules {
		if !r.rules[i].matches(namespace, pod, container) {
			continue
		}

		if r.rules[i].Channel == "" {
			return "", false
		}

		return r.rules[i].Channel, true
	}

	return "", false
}

// Rules returns a copy of the configured rules in priority order.
func (r *Router) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)

	return out
}
