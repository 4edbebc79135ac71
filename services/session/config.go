package session

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	CodeParam    = "code"
	DeclineParam = "nothingplease"
)

// SessionConfig is what a visit's entry link says about the session. It is
// built once per visit and never changes afterwards.
type SessionConfig struct {
	Code    string
	Decline bool
}

// HasCode reports whether the link carried a workshop code.
func (c SessionConfig) HasCode() bool {
	return c.Code != ""
}

// ConfigFromQuery reads the code and decline flag from query parameters.
func ConfigFromQuery(q url.Values) SessionConfig {
	return SessionConfig{
		Code:    strings.TrimSpace(q.Get(CodeParam)),
		Decline: q.Get(DeclineParam) == "1",
	}
}

// ConfigFromURL parses a full entry link such as https://host/?code=x.
func ConfigFromURL(raw string) (SessionConfig, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return SessionConfig{}, fmt.Errorf("invalid entry url: %w", err)
	}
	return ConfigFromQuery(u.Query()), nil
}
