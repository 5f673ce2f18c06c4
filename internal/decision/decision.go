// Package decision parses best-action labels emitted by the upstream
// decision model. A label names the option chosen at each stage, e.g.
// ('BTC', 'CASH') for BTC in the first period and cash in the second.
package decision

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrBadLabel is returned for labels that are not a recognised decision form.
var ErrBadLabel = errors.New("unrecognised decision label")

// Decision is the sequence of options chosen, one per stage.
type Decision struct {
	Stages []string
}

// Parse accepts tuple labels ("('BTC', 'CASH')"), pipe or comma separated
// labels ("BTC|CASH", "BTC,CASH") and single bare options ("CASH").
func Parse(label string) (Decision, error) {
	raw := strings.TrimSpace(label)
	if raw == "" {
		return Decision{}, fmt.Errorf("%w: empty", ErrBadLabel)
	}

	body := raw
	tuple := false
	if strings.HasPrefix(body, "(") || strings.HasPrefix(body, "[") {
		closer := ")"
		if body[0] == '[' {
			closer = "]"
		}
		if !strings.HasSuffix(body, closer) {
			return Decision{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
		}
		body = body[1 : len(body)-1]
		tuple = true
	}

	sep := ","
	if strings.Contains(body, "|") {
		sep = "|"
	}

	parts := strings.Split(body, sep)
	var stages []string
	for i, part := range parts {
		option := strings.Trim(strings.TrimSpace(part), `'"`)
		if option == "" {
			// trailing comma of a one-element tuple
			if tuple && i == len(parts)-1 && i > 0 && strings.TrimSpace(part) == "" {
				continue
			}
			return Decision{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
		}
		if !validOption(option) {
			return Decision{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
		}
		stages = append(stages, option)
	}
	return Decision{Stages: stages}, nil
}

// String renders the stages joined by arrows.
func (d Decision) String() string {
	return strings.Join(d.Stages, " → ")
}

// Label pretty-prints a raw action value, returning it unchanged when it is
// not a decision label.
func Label(raw string) string {
	d, err := Parse(raw)
	if err != nil {
		return raw
	}
	return d.String()
}

func validOption(option string) bool {
	for _, r := range option {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
