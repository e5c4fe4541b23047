package domain

type EventKind string

const (
	EventStreakUpdated        EventKind = "streak_updated"
	EventFirstTimeUser        EventKind = "first_time_user"
	EventDailyCheckInComplete EventKind = "daily_check_in_complete"
	EventMilestoneReached     EventKind = "milestone_reached"
)

type Event struct {
	Kind      EventKind
	Streak    int
	Milestone *Milestone
}

func StreakUpdated(streak int) Event {
	return Event{Kind: EventStreakUpdated, Streak: streak}
}

func FirstTimeUser() Event {
	return Event{Kind: EventFirstTimeUser}
}

func DailyCheckInComplete(streak int) Event {
	return Event{Kind: EventDailyCheckInComplete, Streak: streak}
}

func MilestoneReached(milestone Milestone) Event {
	return Event{Kind: EventMilestoneReached, Streak: milestone.Streak, Milestone: &milestone}
}
