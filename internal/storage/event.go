package storage

import (
	"time"
)

const DescriptionMaxLen = 200

type Event struct {
	ID          int64     `json:"id" db:"id" bson:"_id"`
	Description string    `json:"description" db:"description" bson:"description" validate:"maxlen:200"`
	StartTime   time.Time `json:"startTime" db:"start_datetime" bson:"startDatetime"`
	EndTime     time.Time `json:"endTime" db:"end_datetime" bson:"endDatetime"`
}

// User is a local account created on first sight of an identity subject.
type User struct {
	ID        string `json:"id" db:"id" bson:"_id"`
	Username  string `json:"username" db:"username" bson:"username"`
	IsStaff   bool   `json:"isStaff" db:"is_staff" bson:"isStaff"`
	FirstName string `json:"firstName" db:"first_name" bson:"firstName"`
	LastName  string `json:"lastName" db:"last_name" bson:"lastName"`
}
