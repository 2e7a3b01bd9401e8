package menu

import (
	"fmt"
	"net/http"

	"github.com/lomoval/menu-events/internal/app"
	"github.com/lomoval/menu-events/internal/flags"
	"github.com/lomoval/menu-events/internal/storage"
	"github.com/lomoval/menu-events/internal/util"
)

const listDescriptionLimit = 30

var notices = map[flags.Flag]string{
	flags.EventAdded:   "Event added successfully",
	flags.EventEdited:  "Event edited successfully",
	flags.EventDeleted: "Event deleted successfully",
}

type bucketLabels struct {
	category app.Category
	present  string
	empty    string
}

var homeBuckets = []bucketLabels{
	{category: app.CurrentWeek, present: "This week events (%d)", empty: "No events this week"},
	{category: app.FutureEvents, present: "Future evens (%d)", empty: "No future events"},
	{category: app.PastEvents, present: "Past evens (%d)", empty: "No past events"},
}

// Home builds the main menu. Notices are prepended one by one, so the last
// taken flag ends up on top.
func Home(buckets app.Buckets, staff bool, taken []flags.Flag) Menu {
	items := []Item{Option("Search", http.MethodGet, SearchPath)}
	for _, b := range homeBuckets {
		n := len(buckets[b.category])
		if n == 0 {
			items = append(items, Text(b.empty))
			continue
		}
		items = append(items, Option(fmt.Sprintf(b.present, n), http.MethodGet, EventsPath(string(b.category))))
	}
	if staff {
		items = append([]Item{Option("Add event", http.MethodGet, AddEventPath)}, items...)
	}
	for _, f := range taken {
		if text, ok := notices[f]; ok {
			items = append([]Item{Text(text)}, items...)
		}
	}
	return NewMenu("menu", "", items...)
}

func SearchForm() Form {
	return searchForm("Send keywords to search")
}

func SearchNoResults() Form {
	return searchForm("No results found. Please try again with different keywords")
}

func searchForm(description string) Form {
	return NewForm(http.MethodPost, SearchPath,
		StringItem("keyword", description, "search", "Reply keywords"))
}

func SearchResults(keyword string, events []storage.Event) Menu {
	return NewMenu("search: "+keyword, "", eventLinks(events)...)
}

func EventList(events []storage.Event) Menu {
	return NewMenu("menu", "", eventLinks(events)...)
}

func eventLinks(events []storage.Event) []Item {
	items := make([]Item, 0, len(events))
	for _, e := range events {
		items = append(items, Option(util.TruncateChars(e.Description, listDescriptionLimit), http.MethodGet, EventPath(e.ID)))
	}
	return items
}

func EventUnavailable() Menu {
	return NewMenu("unavailable", "Reply MENU", Text("Event unavailable"))
}

func EventDetails(e storage.Event, staff bool) Menu {
	items := []Item{
		Text("Description: " + e.Description),
		Text("Starting " + e.StartTime.Format(app.DisplayLayout)),
		Text("Ending " + e.EndTime.Format(app.DisplayLayout)),
	}
	if !staff {
		return NewMenu("details", "Reply BACK/MENU", items...)
	}
	items = append(items, Option("Edit/Delete", http.MethodGet, EditEventPath(e.ID, EditSegment)))
	return NewMenu("admin menu", "", items...)
}

func AddEventForm() Form {
	return NewForm(http.MethodPost, AddEventPath,
		StringItem(app.FieldDescription.String(), "Send the description", "description", "Reply text"),
		StringItem(app.FieldStartTime.String(),
			"Send the starting date and time\nExample: 31-12-2020 12:00",
			"starting date time", "Reply with date and time"),
		StringItem(app.FieldEndTime.String(),
			"Send the ending date and time\nExample: 31-12-2020 14:00",
			"ending date time", "Reply with date and time"),
	)
}

func AddEventFailed() Form {
	return NewForm(http.MethodGet, HomePath,
		StringItem("add_event", "Event not added. Please check your input format and try again.",
			"add event", "Reply BACK"))
}

func EditMenu(e storage.Event) Menu {
	return NewMenu("edit/delete", "",
		Option("Edit description: "+util.TruncateChars(e.Description, listDescriptionLimit),
			http.MethodPost, EditEventPath(e.ID, app.FieldDescription.String())),
		Option("Edit starting date time: "+app.FieldStartTime.Value(e),
			http.MethodPost, EditEventPath(e.ID, app.FieldStartTime.String())),
		Option("Edit ending date time: "+app.FieldEndTime.Value(e),
			http.MethodPost, EditEventPath(e.ID, app.FieldEndTime.String())),
		Option("Delete", http.MethodDelete, EditEventPath(e.ID, DeleteSegment)),
	)
}

func EditUnavailable() Menu {
	return NewMenu("Unavailable", "Reply MENU", Text("Event unavailable"))
}

func FieldPrompt(e storage.Event, f app.Field) Form {
	name := f.String()
	return NewForm(http.MethodPost, EditEventPath(e.ID, name),
		StringItem(name,
			fmt.Sprintf("Current %s: %s\nSend input to edit", name, f.Value(e)),
			"edit "+name, "Reply with input/BACK"))
}

func EditEventFailed() Form {
	return NewForm(http.MethodGet, HomePath,
		StringItem("edit_event",
			"Event not edited. Please check your input format and try again.\n"+
				"Example for date and time format: 31-12-2020 12:00",
			"edit event", "Reply BACK"))
}
