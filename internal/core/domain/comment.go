package domain

import "time"

// GuestNickname is attributed to comments posted without a logged-in user.
const GuestNickname = "Guest"

// Comment is a message left on a country page.
//
// Nickname is copied from the author at post time and is not updated when the
// author later changes their nickname. UserID is nil for guest comments.
type Comment struct {
	ID          int64     `json:"id"`
	CountryCode string    `json:"countryCode"`
	Nickname    string    `json:"nickname"`
	Content     string    `json:"content"`
	UserID      *int64    `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
