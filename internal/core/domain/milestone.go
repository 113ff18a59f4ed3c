package domain

// VoteMilestones are the per-player vote counts that trigger a threshold notification.
var VoteMilestones = []int{10, 25, 50, 100}

// CrossedMilestones returns the milestones m with notified < m <= count, in ascending order.
func CrossedMilestones(notified int, count int64) []int {
	var crossed []int
	for _, m := range VoteMilestones {
		if m > notified && int64(m) <= count {
			crossed = append(crossed, m)
		}
	}
	return crossed
}

// HighestMilestone returns the largest milestone reached by count, or 0.
func HighestMilestone(count int64) int {
	highest := 0
	for _, m := range VoteMilestones {
		if int64(m) <= count && m > highest {
			highest = m
		}
	}
	return highest
}
