package models

import "time"

// FilterAll is the sentinel filter value meaning "every category".
const FilterAll = "All"

// Subscriber is a registered bot user. UserID is the Telegram identity and
// the primary key; a row is created at most once per user and the creation
// never overwrites existing fields.
type Subscriber struct {
	UserID     int64     `db:"user_id"`
	Name       string    `db:"name"`
	Subscribed bool      `db:"subscribed"`
	Filters    string    `db:"filters"`
	JoinedAt   time.Time `db:"joined_at"`
}

// WantsCategory reports whether a job of the given category passes the
// subscriber's filter.
func (s *Subscriber) WantsCategory(c Category) bool {
	return s.Filters == FilterAll || s.Filters == string(c)
}
