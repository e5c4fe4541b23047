// Package prefs converts progress state to and from the flat key/value form
// shared by the SQLite and Redis stores.
package prefs

import (
	"strconv"
	"strings"

	"github.com/bnema/levent-cli/internal/domain"
)

const (
	KeyLastCheckInDate   = "LastCheckInDate"
	KeyCurrentStreak     = "CurrentStreak"
	KeyLongestStreak     = "LongestStreak"
	KeyTotalCheckIns     = "TotalCheckIns"
	KeyTotalInteractions = "TotalInteractions"
	KeyTodayInteractions = "TodayInteractions"
	KeyInteractionDate   = "InteractionDate"
	KeyFirstTimeUser     = "FirstTimeUser"
)

// Keys lists every persisted key in a stable order.
func Keys() []string {
	return []string{
		KeyLastCheckInDate,
		KeyCurrentStreak,
		KeyLongestStreak,
		KeyTotalCheckIns,
		KeyTotalInteractions,
		KeyTodayInteractions,
		KeyInteractionDate,
		KeyFirstTimeUser,
	}
}

// Encode returns every key. Absent dates encode as "" and an unset
// first-time flag as "0".
func Encode(state domain.ProgressState) map[string]string {
	firstTime := "0"
	if state.FirstTimeUser {
		firstTime = "1"
	}

	return map[string]string{
		KeyLastCheckInDate:   state.LastCheckInDate.String(),
		KeyCurrentStreak:     strconv.Itoa(state.CurrentStreak),
		KeyLongestStreak:     strconv.Itoa(state.LongestStreak),
		KeyTotalCheckIns:     strconv.Itoa(state.TotalCheckIns),
		KeyTotalInteractions: strconv.Itoa(state.TotalInteractions),
		KeyTodayInteractions: strconv.Itoa(state.TodayInteractions),
		KeyInteractionDate:   state.InteractionDate.String(),
		KeyFirstTimeUser:     firstTime,
	}
}

// Decode never fails: missing or malformed values read as absent.
func Decode(values map[string]string) domain.ProgressState {
	state := domain.ProgressState{
		LastCheckInDate:   Date(values[KeyLastCheckInDate]),
		CurrentStreak:     Int(values[KeyCurrentStreak]),
		LongestStreak:     Int(values[KeyLongestStreak]),
		TotalCheckIns:     Int(values[KeyTotalCheckIns]),
		TotalInteractions: Int(values[KeyTotalInteractions]),
		TodayInteractions: Int(values[KeyTodayInteractions]),
		InteractionDate:   Date(values[KeyInteractionDate]),
		FirstTimeUser:     Bool(values[KeyFirstTimeUser]),
	}
	state.Normalize()

	return state
}

func Int(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

func Date(raw string) domain.Date {
	date, _ := domain.ParseDate(raw)
	return date
}

func Bool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
