package models

// Studio is the studio snapshot embedded in a booked class.
type Studio struct {
	StudioUUID  string         `json:"studio_uuid"`
	Name        string         `json:"name"`
	PhoneNumber *string        `json:"phone_number"`
	TimeZone    *string        `json:"time_zone"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	Address     *StudioAddress `json:"address"`
}

type StudioAddress struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}
