package application

import "github.com/bnema/levent-cli/internal/domain"

type ProgressStatus struct {
	Today                domain.Date `json:"today"`
	LastCheckInDate      domain.Date `json:"last_check_in_date"`
	CurrentStreak        int         `json:"current_streak"`
	LongestStreak        int         `json:"longest_streak"`
	TotalCheckIns        int         `json:"total_check_ins"`
	TotalInteractions    int         `json:"total_interactions"`
	TodayInteractions    int         `json:"today_interactions"`
	RequiredInteractions int         `json:"required_interactions"`
	CheckInComplete      bool        `json:"check_in_complete"`
	// NextMilestone is 0 once every threshold has been passed.
	NextMilestone int `json:"next_milestone"`
}

func (s ProgressStatus) RemainingInteractions() int {
	if s.CheckInComplete || s.TodayInteractions >= s.RequiredInteractions {
		return 0
	}
	return s.RequiredInteractions - s.TodayInteractions
}

type Suggestion struct {
	Category domain.Category      `json:"category"`
	Entry    domain.PlaybookEntry `json:"entry"`
	// Fallback is set when the classified category had no entries and the
	// entry was taken from another category.
	Fallback bool `json:"fallback"`
}

type Reply struct {
	Text        string
	Interaction InteractionResult
	Suggestion  *Suggestion
	// Degraded is set when the backend failed and Text is the apology.
	Degraded bool
}

type Greeting struct {
	Text          string
	FirstTimeUser bool
}
