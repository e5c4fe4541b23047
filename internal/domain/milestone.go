package domain

import "fmt"

const (
	milestoneMessageDefault = "Way to stay consistent! LeVent is proud of your dedication."
	milestoneMessageWeek    = "One week strong! You're showing playoff-level mental toughness!"
	milestoneMessageAllStar = "That's All-Star dedication right there! Your mental game is getting stronger every day!"
	milestoneMessageChamp   = "CHAMPIONSHIP LEVEL COMMITMENT! You're building mental strength like a true MVP!"
)

type Milestones struct {
	Thresholds [4]int
}

func DefaultMilestones() Milestones {
	return Milestones{Thresholds: [4]int{3, 7, 14, 30}}
}

// IsMilestone reports whether streak lands exactly on a threshold.
func (m Milestones) IsMilestone(streak int) bool {
	for _, threshold := range m.Thresholds {
		if threshold > 0 && streak == threshold {
			return true
		}
	}
	return false
}

// Message picks the celebration text by the highest threshold streak has
// reached, which is a >= comparison unlike IsMilestone.
func (m Milestones) Message(streak int) string {
	switch {
	case m.Thresholds[3] > 0 && streak >= m.Thresholds[3]:
		return milestoneMessageChamp
	case m.Thresholds[2] > 0 && streak >= m.Thresholds[2]:
		return milestoneMessageAllStar
	case m.Thresholds[1] > 0 && streak >= m.Thresholds[1]:
		return milestoneMessageWeek
	default:
		return milestoneMessageDefault
	}
}

func (m Milestones) Headline(streak int) string {
	return fmt.Sprintf("%d Day Streak!", streak)
}

func (m Milestones) Validate() error {
	previous := 0
	for i, threshold := range m.Thresholds {
		if threshold <= 0 {
			return fmt.Errorf("milestone %d must be positive, got %d", i+1, threshold)
		}
		if threshold <= previous {
			return fmt.Errorf("milestones must be strictly increasing, got %v", m.Thresholds)
		}
		previous = threshold
	}

	return nil
}

type Milestone struct {
	Streak   int
	Headline string
	Message  string
}

func (m Milestones) For(streak int) Milestone {
	return Milestone{
		Streak:   streak,
		Headline: m.Headline(streak),
		Message:  m.Message(streak),
	}
}
