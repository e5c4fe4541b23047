package domain

// ProgressState is the durable check-in and streak record of a single user.
type ProgressState struct {
	LastCheckInDate   Date
	CurrentStreak     int
	LongestStreak     int
	TotalCheckIns     int
	TotalInteractions int
	TodayInteractions int
	InteractionDate   Date
	// FirstTimeUser is set once the first-time greeting has been observed.
	FirstTimeUser bool
}

// Normalize clamps counters that a hand-edited store could have broken.
func (s *ProgressState) Normalize() {
	if s == nil {
		return
	}

	s.CurrentStreak = nonNegative(s.CurrentStreak)
	s.LongestStreak = nonNegative(s.LongestStreak)
	s.TotalCheckIns = nonNegative(s.TotalCheckIns)
	s.TotalInteractions = nonNegative(s.TotalInteractions)
	s.TodayInteractions = nonNegative(s.TodayInteractions)

	if s.LongestStreak < s.CurrentStreak {
		s.LongestStreak = s.CurrentStreak
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
