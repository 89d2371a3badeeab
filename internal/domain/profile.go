package domain

import "time"

// Faith levels, intentions and lifestyles recognised by the scorer.
// Any other value is accepted and scored with the documented default.
const (
	FaithLevelExploring   = "Exploring"
	FaithLevelCultural    = "Cultural"
	FaithLevelPracticing  = "Practicing"
	FaithLevelVerySerious = "Very Serious"

	IntentionUnsure        = "Unsure"
	IntentionDatingToMarry = "Dating to Marry"
	IntentionMarriageSoon  = "Marriage in 1-2 years"
	IntentionMarriageASAP  = "Marriage ASAP"

	LifestyleModern      = "Modern"
	LifestyleModerate    = "Moderate"
	LifestyleTraditional = "Traditional"

	FaithChristian = "Christian"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" db:"latitude"`
	Lon float64 `json:"lon" db:"longitude"`
}

// Valid reports whether the coordinate lies within the latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Profile is owned by the profile store and is read-only to the matching core.
type Profile struct {
	Identity      string      `json:"firebaseUid" db:"identity"`
	Name          string      `json:"name" db:"name"`
	Age           int         `json:"age" db:"age"`
	Gender        string      `json:"gender" db:"gender"`
	LocationLabel string      `json:"location" db:"location_label"`
	Coordinates   *Coordinate `json:"coordinates,omitempty" db:"-"`
	Faith         string      `json:"faith" db:"faith"`
	FaithLevel    string      `json:"faithLevel" db:"faith_level"`
	Denomination  string      `json:"denomination" db:"denomination"`
	Values        []string    `json:"values" db:"-"`
	Intention     string      `json:"intention" db:"intention"`
	Lifestyle     string      `json:"lifestyle" db:"lifestyle"`
	Bio           string      `json:"bio" db:"bio"`
	ProfileImage  string      `json:"profileImage" db:"profile_image"`
	IsVerified    bool        `json:"isVerified" db:"is_verified"`
	IsPremium     bool        `json:"isPremium" db:"is_premium"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

// HasCoordinates reports whether the profile carries a geocoordinate.
func (p *Profile) HasCoordinates() bool {
	return p != nil && p.Coordinates != nil
}
