package app

import "fmt"

type Mode string

const (
	// ModeRun archives once and exits.
	ModeRun Mode = "run"
	// ModeVerify checks the archive once and exits.
	ModeVerify Mode = "verify"
	// ModeSchedule archives on a cron schedule and serves bot commands and the status endpoint.
	ModeSchedule Mode = "schedule"
)

// Exit codes of the one-shot modes.
const (
	ExitOK       = 0
	ExitFatal    = 1
	ExitProblems = 2
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRun, ModeVerify, ModeSchedule:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q, expected run, verify or schedule", s)
	}
}
