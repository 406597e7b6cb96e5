package conf

import (
	"errors"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Host is a case-insensitive (hostname, port) pair, the key type for the
// site-lookup map built at startup. Port defaults to 80 when absent from a
// request's Host header or a config entry.
type Host struct {
	Hostname string
	Port     string
}

// ErrInvalidHost is returned by ParseHost when s has no hostname component.
var ErrInvalidHost = errors.New("conf: invalid host")

// ParseHost parses "hostname" or "hostname:port" into a normalized Host:
// hostname lowercased, port defaulted to "80".
func ParseHost(s string) (Host, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Host{}, ErrInvalidHost
	}

	hostname, port, ok := strings.Cut(s, ":")
	if !ok {
		port = "80"
	}
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return Host{}, ErrInvalidHost
	}
	if port = strings.TrimSpace(port); port == "" {
		port = "80"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return Host{}, ErrInvalidHost
	}

	return Host{Hostname: hostname, Port: port}, nil
}

// String renders "hostname:port".
func (h Host) String() string {
	return h.Hostname + ":" + h.Port
}

// HostList is the config-document shape of Site.Host: either a single
// "host[:port]" scalar or a list of them in YAML. It decodes to the
// normalized form eagerly so the rest of the program only ever sees valid
// Host values.
type HostList []Host

// UnmarshalYAML accepts both a scalar string and a sequence of strings.
func (h *HostList) UnmarshalYAML(node *yaml.Node) error {
	var raw []string

	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		raw = []string{single}
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	default:
		return errors.New("conf: host must be a string or list of strings")
	}

	parsed := make(HostList, 0, len(raw))
	for _, s := range raw {
		host, err := ParseHost(s)
		if err != nil {
			return err
		}
		parsed = append(parsed, host)
	}
	*h = parsed
	return nil
}
