package models

import "fmt"

type ViewMode string

const (
	ModeRead      ViewMode = "read"
	ModeEdit      ViewMode = "edit"
	ModeConfigure ViewMode = "configure"
)

// ParseViewMode accepts the mode names, case-sensitive.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ModeRead, ModeEdit, ModeConfigure:
		return m, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}
