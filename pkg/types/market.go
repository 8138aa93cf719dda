package types

import (
	"time"

	"github.com/beevik/etree"
)

// marketHeader holds the fields shared by every market envelope: the
// transaction date and the participant/user making the request. The server
// checks both against the client certificate.
type marketHeader struct {
	Date        time.Time
	Participant string
	User        string
}

func (h *marketHeader) validate() error {
	if err := ValidateParticipant(h.Participant); err != nil {
		return err
	}
	return ValidateUser(h.User)
}

func (h *marketHeader) marshalAttrs(el *etree.Element) {
	setDateAttr(el, "Date", h.Date)
	setAttr(el, "ParticipantName", h.Participant)
	setAttr(el, "UserName", h.User)
}

func (h *marketHeader) unmarshalAttrs(el *etree.Element) error {
	date, err := attrDate(el, "Date")
	if err != nil {
		return err
	}
	h.Date = date
	h.Participant = attrString(el, "ParticipantName")
	h.User = attrString(el, "UserName")
	return nil
}

// MarketQuery is the envelope for market read operations. Days is the
// number of days ahead being queried; for the day-ahead market it must be 1.
type MarketQuery struct {
	Date        time.Time
	Participant string
	User        string
	Days        int
}

func (q *MarketQuery) ElementName() string { return "MarketQuery" }
func (q *MarketQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *MarketQuery) MarshalElement() (*etree.Element, error) {
	h := marketHeader{Date: q.Date, Participant: q.Participant, User: q.User}
	if err := h.validate(); err != nil {
		return nil, err
	}
	days := q.Days
	if days == 0 {
		days = 1
	}
	if err := validateRange("NumOfDays", days, 1, 7); err != nil {
		return nil, err
	}
	el := etree.NewElement(q.ElementName())
	h.marshalAttrs(el)
	setIntAttr(el, "NumOfDays", days)
	return el, nil
}

func (q *MarketQuery) UnmarshalElement(el *etree.Element) error {
	var h marketHeader
	if err := h.unmarshalAttrs(el); err != nil {
		return err
	}
	days, err := attrInt(el, "NumOfDays")
	if err != nil {
		return err
	}
	q.Date, q.Participant, q.User, q.Days = h.Date, h.Participant, h.User, days
	return nil
}

// MarketSubmit is the envelope for market write operations.
type MarketSubmit struct {
	Date        time.Time
	Participant string
	User        string
	// MarketType is optional on submissions; some payload families carry
	// their own market type instead.
	MarketType MarketType
	Days       int
}

func (s *MarketSubmit) ElementName() string { return "MarketSubmit" }
func (s *MarketSubmit) Kind() EnvelopeKind  { return KindSubmit }

func (s *MarketSubmit) MarshalElement() (*etree.Element, error) {
	h := marketHeader{Date: s.Date, Participant: s.Participant, User: s.User}
	if err := h.validate(); err != nil {
		return nil, err
	}
	days := s.Days
	if days == 0 {
		days = 1
	}
	if err := validateRange("NumOfDays", days, 1, 31); err != nil {
		return nil, err
	}
	el := etree.NewElement(s.ElementName())
	h.marshalAttrs(el)
	setOptAttr(el, "MarketType", string(s.MarketType))
	setIntAttr(el, "NumOfDays", days)
	return el, nil
}

func (s *MarketSubmit) UnmarshalElement(el *etree.Element) error {
	var h marketHeader
	if err := h.unmarshalAttrs(el); err != nil {
		return err
	}
	days, err := attrInt(el, "NumOfDays")
	if err != nil {
		return err
	}
	s.Date, s.Participant, s.User, s.Days = h.Date, h.Participant, h.User, days
	s.MarketType = MarketType(attrString(el, "MarketType"))
	return nil
}

// MarketCancel is the envelope for market cancellation operations.
type MarketCancel struct {
	Date        time.Time
	Participant string
	User        string
	MarketType  MarketType
	Days        int
}

func (c *MarketCancel) ElementName() string { return "MarketCancel" }
func (c *MarketCancel) Kind() EnvelopeKind  { return KindCancel }

func (c *MarketCancel) MarshalElement() (*etree.Element, error) {
	h := marketHeader{Date: c.Date, Participant: c.Participant, User: c.User}
	if err := h.validate(); err != nil {
		return nil, err
	}
	if c.MarketType == "" {
		return nil, &FieldError{Field: "MarketType", Value: "", Reason: "is required for cancellations"}
	}
	days := c.Days
	if days == 0 {
		days = 1
	}
	if err := validateRange("NumOfDays", days, 1, 31); err != nil {
		return nil, err
	}
	el := etree.NewElement(c.ElementName())
	h.marshalAttrs(el)
	setAttr(el, "MarketType", string(c.MarketType))
	setIntAttr(el, "NumOfDays", days)
	return el, nil
}

func (c *MarketCancel) UnmarshalElement(el *etree.Element) error {
	var h marketHeader
	if err := h.unmarshalAttrs(el); err != nil {
		return err
	}
	days, err := attrInt(el, "NumOfDays")
	if err != nil {
		return err
	}
	c.Date, c.Participant, c.User, c.Days = h.Date, h.Participant, h.User, days
	c.MarketType = MarketType(attrString(el, "MarketType"))
	return nil
}
