package dashboard

import (
	"errors"
	"strings"
)

// NormalizeRiotID trims both parts and drops a redundant leading '#' from
// the tag. ok is false when either part ends up empty.
func NormalizeRiotID(gameName, tagLine string) (string, string, bool) {
	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimPrefix(strings.TrimSpace(tagLine), "#")
	if gameName == "" || tagLine == "" {
		return "", "", false
	}
	return gameName, tagLine, true
}

var ErrInvalidRiotID = errors.New("riot id must look like Name#TAG")

// ParseRiotID splits "Name#TAG" on the last '#'.
func ParseRiotID(s string) (string, string, error) {
	i := strings.LastIndex(s, "#")
	if i < 0 {
		return "", "", ErrInvalidRiotID
	}
	name, tag, ok := NormalizeRiotID(s[:i], s[i+1:])
	if !ok {
		return "", "", ErrInvalidRiotID
	}
	return name, tag, nil
}

// Form is the Riot ID lookup form. Disabled mirrors the loading state owned
// by whoever renders it.
type Form struct {
	GameName string
	TagLine  string
	Disabled bool

	onSubmit func(gameName, tagLine string)
}

func NewForm(onSubmit func(gameName, tagLine string)) *Form {
	return &Form{onSubmit: onSubmit}
}

// Submit invokes the callback with normalized input, or does nothing when
// the input is incomplete. It reports whether the callback ran.
func (f *Form) Submit(gameName, tagLine string) bool {
	f.GameName, f.TagLine = gameName, tagLine
	name, tag, ok := NormalizeRiotID(gameName, tagLine)
	if !ok || f.onSubmit == nil {
		return false
	}
	f.onSubmit(name, tag)
	return true
}
