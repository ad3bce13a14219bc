package domain

// DefaultTrip is the trip a user sees on first run, before anything is saved.
// Each call returns fresh slices.
func DefaultTrip() Trip {
	return Trip{
		TripMeta: TripMeta{
			Title:     "Thailand Journey",
			StartDate: "2026-02-12",
			EndDate:   "2026-02-17",
			Headline:  "Sawasdee, Bangkok",
			Subtext:   "Six days of temples, markets and street food",
		},
		Schedule: []ItineraryDay{
			{
				Label:    "DAY 1",
				Date:     "02/12",
				Location: "Bangkok",
				Items: []ItineraryItem{
					{Time: "12:30", Icon: "🏨", Title: "Arrival & Hotel Check-in", Description: "The Standard, Bangkok"},
					{Time: "18:00", Icon: "🍜", Title: "Dinner at Jodd Fairs", Description: "Night market food tour"},
				},
			},
		},
		Flights: []Flight{
			{Type: "Departure", FlightNum: "JX741", From: "TPE", To: "BKK", Date: "FEB 12, 2026", Gate: "B7", Boarding: "08:15", Seat: "12A"},
			{Type: "Return", FlightNum: "JX742", From: "BKK", To: "TPE", Date: "FEB 17, 2026", Gate: "C2", Boarding: "13:40", Seat: "12A"},
		},
		Shopping: []ShoppingItem{},
		Expenses: []ExpenseEntry{},
	}
}
