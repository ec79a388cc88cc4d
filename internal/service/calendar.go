package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/emersion/go-ical"
)

const calendarProductID = "-//events-dashboard//EN"

// EncodeCalendar renders events as an iCalendar feed. Events without a
// readable start time are left out; with none left the feed is an empty
// VCALENDAR.
func EncodeCalendar(events []models.Event, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	for _, e := range events {
		start, ok := e.Start()
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, toVEvent(e, start, stamp))
	}
	// go-ical refuses to encode a calendar without components.
	if len(cal.Children) == 0 {
		return emptyCalendar(), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func emptyCalendar() []byte {
	return []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:" + calendarProductID + "\r\n" +
		"END:VCALENDAR\r\n")
}

func toVEvent(e models.Event, start, stamp time.Time) *ical.Component {
	ve := ical.NewEvent()
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@events-dashboard", e.ID))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	if end, ok := e.End(); ok {
		ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	}
	ve.Props.SetText(ical.PropSummary, e.Title)

	if e.EventLink != "" {
		link := ical.NewProp(ical.PropURL)
		link.Value = e.EventLink
		ve.Props.Set(link)
	}
	if e.Note != nil && *e.Note != "" {
		ve.Props.SetText(ical.PropDescription, *e.Note)
	}
	for _, c := range []string{e.Market, e.Industry} {
		if c == "" {
			continue
		}
		p := ical.NewProp(ical.PropCategories)
		p.SetText(c)
		ve.Props.Add(p)
	}
	if e.Organizer != "" {
		p := ical.NewProp("X-ORGANIZER-NAME")
		p.SetText(e.Organizer)
		ve.Props.Add(p)
	}
	return ve.Component
}
