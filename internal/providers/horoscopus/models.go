package horoscopus

import "time"

// ProfileRequest is the body accepted by POST /accounts/profiles/
type ProfileRequest struct {
	BirthDatetime   time.Time `json:"birth_datetime"`
	BirthLocation   int64     `json:"birth_location"`
	CurrentLocation *int64    `json:"current_location,omitempty"`
	Timezone        string    `json:"timezone"`
}

type locationDetail struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// ProfileResponse mirrors the profile serializer output
type ProfileResponse struct {
	ID                    int64           `json:"id"`
	BirthDatetime         time.Time       `json:"birth_datetime"`
	BirthLocationDetail   locationDetail  `json:"birth_location_detail"`
	CurrentLocationDetail *locationDetail `json:"current_location_detail"`
	Timezone              string          `json:"timezone"`
}
