package models

// MaxTimeSlots is the maximum number of reminder times a user can configure.
const MaxTimeSlots = 5

// DefaultTimeSlot is returned when a user has never saved notification
// settings.
const DefaultTimeSlot = "08:00"

// NotificationSettings holds one user's reminder configuration plus the
// sent-tracking bookkeeping. LastSentTimeSlots lists the "HH:mm" slots already
// delivered on LastSentDate; it resets whenever the date rolls over, which is
// what makes a (date, slot) pair deliverable at most once.
type NotificationSettings struct {
	Enabled                   bool     `json:"enabled" dynamodbav:"enabled"`
	TimeSlots                 []string `json:"timeSlots" dynamodbav:"timeSlots"`
	IdiomNotificationsEnabled bool     `json:"idiomNotificationsEnabled" dynamodbav:"idiomNotificationsEnabled"`
	LastSentDate              string   `json:"lastSentDate,omitempty" dynamodbav:"lastSentDate,omitempty"`
	LastSentTimeSlots         []string `json:"lastSentTimeSlots,omitempty" dynamodbav:"lastSentTimeSlots,omitempty"`
}

// DefaultNotificationSettings is what a user without a stored record gets:
// reminders off, the default morning slot, idiom reminders on.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:                   false,
		TimeSlots:                 []string{DefaultTimeSlot},
		IdiomNotificationsEnabled: true,
	}
}

// SentFor reports whether the given (date, slot) pair has already been
// delivered.
func (s NotificationSettings) SentFor(date, slot string) bool {
	if s.LastSentDate != date {
		return false
	}
	for _, sent := range s.LastSentTimeSlots {
		if sent == slot {
			return true
		}
	}
	return false
}

// ListSettings holds per-list options. A list without a stored record counts
// as notification-enabled; turning notifications off never touches the words
// in the list.
type ListSettings struct {
	IsNotificationEnabled bool `json:"isNotificationEnabled"`
}
