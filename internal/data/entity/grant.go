package entity

import "time"

// UnlockGrant is a per-movie access receipt. A grant is valid while
// now - IssuedAt stays under the configured window; expiry is evaluated at
// read time and expired rows are left in place.
type UnlockGrant struct {
	MovieID  string    `json:"movieId"`
	IssuedAt time.Time `json:"issuedAt"`
}
