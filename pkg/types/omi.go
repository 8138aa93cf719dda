package types

import (
	"time"

	"github.com/beevik/etree"
)

// OMIMarketSubmit is the envelope for OMI write operations. OMI envelopes
// carry no market type or day count; the blocks are described entirely by
// the payload.
type OMIMarketSubmit struct {
	Date        time.Time
	Participant string
	User        string
}

func (s *OMIMarketSubmit) ElementName() string { return "MarketSubmit" }
func (s *OMIMarketSubmit) Kind() EnvelopeKind  { return KindSubmit }

func (s *OMIMarketSubmit) MarshalElement() (*etree.Element, error) {
	h := marketHeader{Date: s.Date, Participant: s.Participant, User: s.User}
	if err := h.validate(); err != nil {
		return nil, err
	}
	el := etree.NewElement(s.ElementName())
	h.marshalAttrs(el)
	return el, nil
}

func (s *OMIMarketSubmit) UnmarshalElement(el *etree.Element) error {
	var h marketHeader
	if err := h.unmarshalAttrs(el); err != nil {
		return err
	}
	s.Date, s.Participant, s.User = h.Date, h.Participant, h.User
	return nil
}

// OMIMarketQuery is the envelope for OMI read operations.
type OMIMarketQuery struct {
	Date        time.Time
	Participant string
	User        string
}

func (q *OMIMarketQuery) ElementName() string { return "MarketQuery" }
func (q *OMIMarketQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *OMIMarketQuery) MarshalElement() (*etree.Element, error) {
	h := marketHeader{Date: q.Date, Participant: q.Participant, User: q.User}
	if err := h.validate(); err != nil {
		return nil, err
	}
	el := etree.NewElement(q.ElementName())
	h.marshalAttrs(el)
	return el, nil
}

func (q *OMIMarketQuery) UnmarshalElement(el *etree.Element) error {
	var h marketHeader
	if err := h.unmarshalAttrs(el); err != nil {
		return err
	}
	q.Date, q.Participant, q.User = h.Date, h.Participant, h.User
	return nil
}
