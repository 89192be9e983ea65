package model

import "time"

// Reminder is a named daily alarm. Time is a clock value packed as
// hour*100 + minute (930 = 09:30), the same encoding the timefield widget
// edits and clamps.
type Reminder struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Time    int    `json:"time"`
	Enabled bool   `json:"enabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
