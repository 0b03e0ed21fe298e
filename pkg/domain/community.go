package domain

import "time"

// Community is a topic that posts are filed under.
type Community struct {
	ID CommunityID `json:"id"`
	// Name is unique across communities.
	Name string `json:"name"`
	// Order is the display priority; lower values are listed first. Values need
	// not be unique or contiguous.
	Order int `json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommunitySummary is the community block nested into post read models.
type CommunitySummary struct {
	ID   CommunityID `json:"id"`
	Name string      `json:"name"`
}

// CommunityDetail is a community together with the number of posts filed
// under it.
type CommunityDetail struct {
	Community

	PostCount int64 `json:"postCount"`
}
