package snapshot

import "fmt"

// UpdateEnvVar switches test suites to ModeUpdate when set to 1 or true
const UpdateEnvVar = "UPDATE_SNAPSHOTS"

// Mode selects what a run does with generated output.
type Mode int

const (
	// ModeVerify compares generated output with the stored baseline
	ModeVerify Mode = iota
	// ModeUpdate replaces the stored baseline with generated output
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeVerify:
		return "verify"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "verify" (or empty) and "update"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "verify":
		return ModeVerify, nil
	case "update":
		return ModeUpdate, nil
	default:
		return ModeVerify, fmt.Errorf("unknown snapshot mode %q", s)
	}
}
