package notifier

import (
	"fmt"

	"github.com/eduboost/eventpipe/pkg/event"
)

// Build maps an event to its notification. The mapping per type is
// fixed: title, message template and category. Returns false for
// unknown event types.
func Build(e *event.Event) (Notification, bool) {
	switch e.EventType {
	case event.TypeTaskCompleted:
		return Notification{
			UserID:   e.UserID,
			Title:    "Task Completed!",
			Message:  fmt.Sprintf("You completed %q and earned %d points", e.TaskTitle, e.Points),
			Category: "success",
		}, true

	case event.TypeTaskUncompleted:
		return Notification{
			UserID:   e.UserID,
			Title:    "Task Unchecked",
			Message:  fmt.Sprintf("You unchecked %q and lost %d points", e.TaskTitle, e.Points),
			Category: "info",
		}, true

	case event.TypeAchievementUnlocked:
		return Notification{
			UserID:   e.UserID,
			Title:    "Achievement Unlocked!",
			Message:  fmt.Sprintf("You unlocked: %s (+%d points)", e.AchievementName, e.Points),
			Category: "achievement",
		}, true

	case event.TypeLevelUp:
		return Notification{
			UserID:   e.UserID,
			Title:    "Level Up!",
			Message:  fmt.Sprintf("Congratulations! You are now level %d", e.NewLevel),
			Category: "celebration",
		}, true

	case event.TypeUserLogin:
		return Notification{
			UserID:   e.UserID,
			Title:    "Welcome back",
			Message:  fmt.Sprintf("Last access: %s", e.Timestamp),
			Category: "info",
		}, true
	}

	return Notification{}, false
}
