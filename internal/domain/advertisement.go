package domain

import "time"

type Advertisement struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	ImageURL  string    `bson:"image_url" json:"imageUrl"`
	TargetURL string    `bson:"target_url" json:"targetUrl"`
	Placement string    `bson:"placement" json:"placement"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	StartsAt  time.Time `bson:"starts_at" json:"startsAt"`
	EndsAt    time.Time `bson:"ends_at" json:"endsAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Live reports whether the ad should be served at the given instant.
func (a Advertisement) Live(now time.Time) bool {
	return a.IsActive && !now.Before(a.StartsAt) && now.Before(a.EndsAt)
}
