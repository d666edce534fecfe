package model

import "time"

type Tag struct {
	ID          string     `json:"id" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Tag         string     `json:"tag" bson:"tag" validate:"required,min=1,max=1024"`
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Description *string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=32768"`
	Location    *Location  `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Location keeps the coordinates exactly as they were submitted.
type Location struct {
	Longitude string `json:"longitude" bson:"longitude" validate:"required,longitude"`
	Latitude  string `json:"latitude" bson:"latitude" validate:"required,latitude"`
	ZoomLevel string `json:"zoom_level" bson:"zoom_level" validate:"required,numeric"`
}

type TagUpdate struct {
	Tag         Patch[string]
	Date        Patch[time.Time]
	Description Patch[string]
	Location    Patch[Location]
}

func (u TagUpdate) Apply(t Tag) Tag {
	if u.Tag.Set && u.Tag.Value != nil {
		t.Tag = *u.Tag.Value
	}
	if u.Date.Set {
		t.Date = u.Date.Value
	}
	if u.Description.Set {
		t.Description = u.Description.Value
	}
	if u.Location.Set {
		t.Location = u.Location.Value
	}
	return t
}
