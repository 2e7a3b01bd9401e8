package menu

import "strconv"

const (
	HomePath      = "/"
	SearchPath    = "/search_wizard/"
	AddEventPath  = "/add_event"
	DeleteSegment = "delete"
	EditSegment   = "edit"
)

func EventsPath(category string) string {
	return "/events/" + category + "/"
}

func EventPath(id int64) string {
	return "/event/" + strconv.FormatInt(id, 10) + "/"
}

func EditEventPath(id int64, segment string) string {
	return "/edit_event/" + strconv.FormatInt(id, 10) + "/" + segment
}
