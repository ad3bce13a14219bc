package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ItineraryDay is one labelled day of the schedule ("DAY 1", "02/12").
// Items are kept ordered by SortItems after every edit.
type ItineraryDay struct {
	Label    string          `json:"day" yaml:"day"`
	Date     string          `json:"date" yaml:"date"` // "MM/DD"
	Location string          `json:"location,omitempty" yaml:"location,omitempty"`
	Items    []ItineraryItem `json:"items" yaml:"items"`
}

// ItineraryItem is a single stop within a day. It has no id: callers address
// it by (day index, item index), and indexes shift after every sort.
type ItineraryItem struct {
	Time        string `json:"time" yaml:"time"` // "HH:MM"; empty sorts last
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"task" yaml:"task"`
	Description string `json:"desc" yaml:"desc"`
	Note        string `json:"note" yaml:"note"`
	MapLink     string `json:"link" yaml:"link"`
	Photo       string `json:"img" yaml:"img"`
	BookingLink string `json:"bookingLink" yaml:"booking_link"`
	BookingNo   string `json:"bookingNo" yaml:"booking_no"`
	BookingImg  string `json:"bookingImg" yaml:"booking_img"`
}

// NewItineraryItem returns the placeholder stop appended by "add item".
func NewItineraryItem() ItineraryItem {
	return ItineraryItem{Time: "12:00", Icon: "📍", Title: "New Stop"}
}

// TimeKey is the sort key of an item: its time with the colons removed,
// "09:30" -> "0930". Malformed times are not normalised.
func TimeKey(t string) string {
	return strings.ReplaceAll(t, ":", "")
}

// CompareItems orders two items by TimeKey using plain string comparison.
// An item without a time sorts after every item that has one.
func CompareItems(a, b ItineraryItem) int {
	switch {
	case a.Time == "" && b.Time == "":
		return 0
	case a.Time == "":
		return 1
	case b.Time == "":
		return -1
	}
	return strings.Compare(TimeKey(a.Time), TimeKey(b.Time))
}

// SortItems stably sorts items in place by CompareItems.
// Items with equal keys keep their relative order.
func SortItems(items []ItineraryItem) {
	slices.SortStableFunc(items, CompareItems)
}

// CloneDays deep-copies a schedule, including every day's item slice.
func CloneDays(days []ItineraryDay) []ItineraryDay {
	if days == nil {
		return nil
	}
	out := make([]ItineraryDay, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Items = cloneSlice(d.Items)
	}
	return out
}

// NextDay builds the day that follows last: label "DAY n+1" where n is the
// current number of days, dated one calendar day after last.Date in year.
// If last.Date is not "MM/DD" the new day has an empty date.
func NextDay(last ItineraryDay, count, year int) ItineraryDay {
	next := ItineraryDay{Label: fmt.Sprintf("DAY %d", count+1), Items: []ItineraryItem{}}
	d, err := parseMonthDay(last.Date, year)
	if err != nil {
		return next
	}
	next.Date = d.AddDate(0, 0, 1).Format("01/02")
	return next
}

// Weekday returns the weekday of a "MM/DD" day date in year.
// ok is false when the date does not parse.
func Weekday(date string, year int) (time.Weekday, bool) {
	d, err := parseMonthDay(date, year)
	if err != nil {
		return 0, false
	}
	return d.Weekday(), true
}

func parseMonthDay(s string, year int) (time.Time, error) {
	md, err := time.Parse("01/02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, md.Month(), md.Day(), 0, 0, 0, 0, time.UTC), nil
}
