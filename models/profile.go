package models

import "time"

// Profile is the user-facing record shown in browse, Tornado and chat.
type Profile struct {
	UserID      string   `dynamodbav:"userId" json:"userId"` // Partition key
	DisplayName string   `dynamodbav:"displayName" json:"displayName"`
	Gender      string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	BirthDate   string   `dynamodbav:"birthDate,omitempty" json:"birthDate,omitempty"` // YYYY-MM-DD
	Bio         string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	City        string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Latitude    float64  `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   float64  `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	LookingFor  string   `dynamodbav:"lookingFor,omitempty" json:"lookingFor,omitempty"`
	Photos      []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"` // S3 keys
	PushCredits int      `dynamodbav:"pushCredits" json:"pushCredits"`
	Suspended   bool     `dynamodbav:"suspended" json:"suspended,omitempty"`
	Role        string   `dynamodbav:"role,omitempty" json:"role,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt" json:"updatedAt"`

	DistanceKm *float64 `dynamodbav:"-" json:"distanceKm,omitempty"` // computed per viewer, never stored
}

// HasLocation reports whether the profile carries usable coordinates.
func (p *Profile) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Age returns the age in whole years at now, or 0 when the birth date is unknown.
func (p *Profile) Age(now time.Time) int {
	dob, err := time.Parse("2006-01-02", p.BirthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// FirstPhoto returns the cover photo key, if any.
func (p *Profile) FirstPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// ProfileCard is the reduced view embedded in conversation lists and decks.
type ProfileCard struct {
	UserID      string   `json:"userId"`
	DisplayName string   `json:"displayName"`
	City        string   `json:"city,omitempty"`
	Photo       string   `json:"photo,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

// Card builds the reduced view of a profile.
func (p *Profile) Card() ProfileCard {
	return ProfileCard{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		City:        p.City,
		Photo:       p.FirstPhoto(),
		DistanceKm:  p.DistanceKm,
	}
}

// BrowseFilter narrows the profile listing.
type BrowseFilter struct {
	Gender        string
	City          string
	MinAge        int
	MaxAge        int
	MaxDistanceKm float64
	Sort          string // "distance" or "newest"
	Limit         int
}
