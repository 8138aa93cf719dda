package types

import (
	"time"

	"github.com/beevik/etree"
)

// RegistrationSubmit is the envelope for registration write operations. It
// carries no attributes of its own; the participant is carried on the
// payload.
type RegistrationSubmit struct{}

func (s *RegistrationSubmit) ElementName() string { return "RegistrationSubmit" }
func (s *RegistrationSubmit) Kind() EnvelopeKind  { return KindSubmit }

func (s *RegistrationSubmit) MarshalElement() (*etree.Element, error) {
	return etree.NewElement(s.ElementName()), nil
}

func (s *RegistrationSubmit) UnmarshalElement(el *etree.Element) error {
	return nil
}

// RegistrationQuery is the envelope for registration read operations.
type RegistrationQuery struct {
	// Action selects between the normal view and the latest revision only.
	Action QueryAction
	// DateType qualifies Date. Only the trade date is supported.
	DateType QueryType
	Date     *time.Time
}

func (q *RegistrationQuery) ElementName() string { return "RegistrationQuery" }
func (q *RegistrationQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *RegistrationQuery) MarshalElement() (*etree.Element, error) {
	action := q.Action
	if action == "" {
		action = QueryActionNormal
	}
	dateType := q.DateType
	if dateType == "" {
		dateType = QueryTypeTrade
	}
	el := etree.NewElement(q.ElementName())
	setAttr(el, "Action", string(action))
	setAttr(el, "DateType", string(dateType))
	setOptDateAttr(el, "Date", q.Date)
	return el, nil
}

func (q *RegistrationQuery) UnmarshalElement(el *etree.Element) error {
	q.Action = QueryAction(attrString(el, "Action"))
	q.DateType = QueryType(attrString(el, "DateType"))
	date, err := attrOptDate(el, "Date")
	if err != nil {
		return err
	}
	q.Date = date
	return nil
}
