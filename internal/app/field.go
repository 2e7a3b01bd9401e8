package app

import (
	"strings"
	"time"

	"github.com/lomoval/menu-events/internal/storage"
)

const (
	// DateTimeLayout is the input and edit format, e.g. 31-12-2020 12:00.
	DateTimeLayout = "02-01-2006 15:04"
	DisplayLayout  = "02-01-2006 at 15:04"
)

// Field is one editable attribute of an event.
type Field int

const (
	FieldDescription Field = iota + 1
	FieldStartTime
	FieldEndTime
)

var Fields = []Field{FieldDescription, FieldStartTime, FieldEndTime}

func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, ErrUnknownField
}

func (f Field) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldStartTime:
		return "start_datetime"
	case FieldEndTime:
		return "end_datetime"
	default:
		return ""
	}
}

// Value formats the current value of the field as the user would type it.
func (f Field) Value(e storage.Event) string {
	switch f {
	case FieldStartTime:
		return e.StartTime.Format(DateTimeLayout)
	case FieldEndTime:
		return e.EndTime.Format(DateTimeLayout)
	default:
		return e.Description
	}
}

func (f Field) apply(e *storage.Event, raw string, loc *time.Location) error {
	switch f {
	case FieldDescription:
		e.Description = raw
	case FieldStartTime:
		t, err := ParseDateTime(raw, loc)
		if err != nil {
			return &ParseError{Field: f.String(), Value: raw, Err: err}
		}
		e.StartTime = t
	case FieldEndTime:
		t, err := ParseDateTime(raw, loc)
		if err != nil {
			return &ParseError{Field: f.String(), Value: raw, Err: err}
		}
		e.EndTime = t
	default:
		return ErrUnknownField
	}
	return nil
}

func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(raw), loc)
}
