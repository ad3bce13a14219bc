package domain

// Flight is one leg shown on the bookings tab. Like itinerary items it has no
// id and is addressed by its index in the flights list.
type Flight struct {
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	FlightNum string `json:"flightNum" yaml:"flight_num"`
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Date      string `json:"date" yaml:"date"`
	Gate      string `json:"gate" yaml:"gate"`
	Boarding  string `json:"time" yaml:"time"`
	Seat      string `json:"seat" yaml:"seat"`
	Image     string `json:"imgUrl" yaml:"img_url"`
	PDFLink   string `json:"pdfUrl" yaml:"pdf_url"`
}

// DisplayType returns the leg's type tag, falling back to "Departure" for
// the first leg and "Return" for the others.
func (f Flight) DisplayType(index int) string {
	if f.Type != "" {
		return f.Type
	}
	if index == 0 {
		return "Departure"
	}
	return "Return"
}
