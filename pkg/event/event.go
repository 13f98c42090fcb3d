// Package event defines the domain event envelope and the static
// mapping of event types to broker topics.
package event

import (
	"encoding/json"
	"fmt"
)

// Type enumerates the domain event types.
type Type string

const (
	TypeTaskCompleted       Type = "task_completed"
	TypeTaskUncompleted     Type = "task_uncompleted"
	TypeAchievementUnlocked Type = "achievement_unlocked"
	TypeLevelUp             Type = "level_up"
	TypeUserLogin           Type = "user_login"
)

// topics maps each event type to its broker topic, 1:1.
var topics = map[Type]string{
	TypeTaskCompleted:       "eduboost.task.completed",
	TypeTaskUncompleted:     "eduboost.task.uncompleted",
	TypeAchievementUnlocked: "eduboost.achievement.unlocked",
	TypeLevelUp:             "eduboost.user.levelup",
	TypeUserLogin:           "eduboost.user.login",
}

// Types returns every known event type.
func Types() []Type {
	return []Type{
		TypeTaskCompleted,
		TypeTaskUncompleted,
		TypeAchievementUnlocked,
		TypeLevelUp,
		TypeUserLogin,
	}
}

// Valid reports whether t is a known event type.
func (t Type) Valid() bool {
	_, ok := topics[t]
	return ok
}

// Topic returns the broker topic for the event type, or "" for an
// unknown type.
func (t Type) Topic() string {
	return topics[t]
}

// AllTopics returns the topics for every known event type.
func AllTopics() []string {
	return TopicsFor(Types()...)
}

// TopicsFor returns the topics for the given event types.
func TopicsFor(types ...Type) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.Topic())
	}
	return out
}

// Event is the unit of work flowing through the broker. The envelope is
// flat: type-specific payload fields sit next to eventType, userId and
// timestamp, matching the wire contract of the HTTP ingress.
type Event struct {
	EventID   string `json:"eventId,omitempty"`
	EventType Type   `json:"eventType"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp,omitempty"`

	// task_completed / task_uncompleted
	TaskID    string `json:"taskId,omitempty"`
	TaskTitle string `json:"taskTitle,omitempty"`
	Points    int    `json:"points,omitempty"`

	// achievement_unlocked (shares Points)
	AchievementID   string `json:"achievementId,omitempty"`
	AchievementName string `json:"achievementName,omitempty"`

	// level_up
	OldLevel    int `json:"oldLevel,omitempty"`
	NewLevel    int `json:"newLevel,omitempty"`
	TotalPoints int `json:"totalPoints,omitempty"`

	// user_login
	Email      string `json:"email,omitempty"`
	DeviceInfo string `json:"deviceInfo,omitempty"`
}

// Decode parses an event from its JSON encoding. Only the presence of
// eventType and userId is enforced; the type itself may be unknown, the
// consumer decides how to treat it.
func Decode(data []byte) (*Event, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty message")
	}

	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if e.EventType == "" {
		return nil, fmt.Errorf("empty eventType")
	}
	if e.UserID == "" {
		return nil, fmt.Errorf("empty userId")
	}

	return &e, nil
}
