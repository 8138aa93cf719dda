package types

import (
	"time"

	"github.com/beevik/etree"
)

// Stack limits for a single offer.
const (
	MinOfferStacks = 1
	MaxOfferStacks = 20
)

// OfferStack is one price-quantity pair within an offer. For the day-ahead
// market the tertiary 2 quantity is mandatory; for the week-ahead market one
// of the primary, secondary, or tertiary 1 quantities must be present.
type OfferStack struct {
	// Number identifies this pair within the offer, 1-20.
	Number int
	// MinimumQuantityKw is the minimum quantity that must be available
	// before the offer can be awarded.
	MinimumQuantityKw int
	PrimaryQtyKw      *int
	Secondary1QtyKw   *int
	Secondary2QtyKw   *int
	Tertiary1QtyKw    *int
	Tertiary2QtyKw    *int
	// UnitPrice is the price in JPY/kW/segment.
	UnitPrice float64
	// ID of the offer this stack belongs to, assigned by the server.
	ID string
}

func (s *OfferStack) marshal() (*etree.Element, error) {
	if err := validateRange("StackNumber", s.Number, 1, 20); err != nil {
		return nil, err
	}
	if err := validatePower("MinimumQuantityInKw", s.MinimumQuantityKw); err != nil {
		return nil, err
	}
	for field, v := range map[string]*int{
		"PrimaryOfferQuantityInKw":    s.PrimaryQtyKw,
		"Secondary1OfferQuantityInKw": s.Secondary1QtyKw,
		"Secondary2OfferQuantityInKw": s.Secondary2QtyKw,
		"Tertiary1OfferQuantityInKw":  s.Tertiary1QtyKw,
		"Tertiary2OfferQuantityInKw":  s.Tertiary2QtyKw,
	} {
		if err := validateOptPower(field, v); err != nil {
			return nil, err
		}
	}
	if err := validatePrice("OfferUnitPrice", s.UnitPrice, 10000); err != nil {
		return nil, err
	}
	if s.ID != "" {
		if err := ValidateOfferID(s.ID); err != nil {
			return nil, err
		}
	}

	el := etree.NewElement("OfferStack")
	setIntAttr(el, "StackNumber", s.Number)
	setIntAttr(el, "MinimumQuantityInKw", s.MinimumQuantityKw)
	setOptIntAttr(el, "PrimaryOfferQuantityInKw", s.PrimaryQtyKw)
	setOptIntAttr(el, "Secondary1OfferQuantityInKw", s.Secondary1QtyKw)
	setOptIntAttr(el, "Secondary2OfferQuantityInKw", s.Secondary2QtyKw)
	setOptIntAttr(el, "Tertiary1OfferQuantityInKw", s.Tertiary1QtyKw)
	setOptIntAttr(el, "Tertiary2OfferQuantityInKw", s.Tertiary2QtyKw)
	setFloatAttr(el, "OfferUnitPrice", s.UnitPrice)
	setOptAttr(el, "OfferId", s.ID)
	return el, nil
}

func (s *OfferStack) unmarshal(el *etree.Element) error {
	var err error
	if s.Number, err = attrInt(el, "StackNumber"); err != nil {
		return err
	}
	if s.MinimumQuantityKw, err = attrInt(el, "MinimumQuantityInKw"); err != nil {
		return err
	}
	if s.PrimaryQtyKw, err = attrOptInt(el, "PrimaryOfferQuantityInKw"); err != nil {
		return err
	}
	if s.Secondary1QtyKw, err = attrOptInt(el, "Secondary1OfferQuantityInKw"); err != nil {
		return err
	}
	if s.Secondary2QtyKw, err = attrOptInt(el, "Secondary2OfferQuantityInKw"); err != nil {
		return err
	}
	if s.Tertiary1QtyKw, err = attrOptInt(el, "Tertiary1OfferQuantityInKw"); err != nil {
		return err
	}
	if s.Tertiary2QtyKw, err = attrOptInt(el, "Tertiary2OfferQuantityInKw"); err != nil {
		return err
	}
	if s.UnitPrice, err = attrFloat(el, "OfferUnitPrice"); err != nil {
		return err
	}
	s.ID = attrString(el, "OfferId")
	return nil
}

// OfferData describes an offer, in both submissions and responses. The
// optional fields are populated by the server on query responses.
type OfferData struct {
	// Resource is the code of the power resource being traded.
	Resource string
	// Start and End bound the blocks the offer covers.
	Start time.Time
	End   time.Time
	// Direction of the offer. Only sell is supported by the MMS.
	Direction Direction
	// Stack holds 1-20 price-quantity pairs.
	Stack []OfferStack

	// DR pattern number, where the resource is demand response.
	PatternNumber *int
	// BSPParticipant is the BSP that submitted the offer.
	BSPParticipant string
	// CompanyShortName is the abbreviated counterparty name.
	CompanyShortName string
	// Operator identifies the TSO or MO.
	Operator string
	Area     AreaCode
	// ResourceShortName is the abbreviated resource name.
	ResourceShortName string
	// SystemCode is the grid code of the resource.
	SystemCode string
	// SubmissionTime is set by the server.
	SubmissionTime *time.Time
}

func (o *OfferData) ElementName() string { return "OfferData" }
func (o *OfferData) Kind() EnvelopeKind  { return KindSubmit }

func (o *OfferData) MarshalElement() (*etree.Element, error) {
	if err := ValidateResourceName(o.Resource); err != nil {
		return nil, err
	}
	if o.Direction == "" {
		return nil, &FieldError{Field: "Direction", Value: "", Reason: "is required"}
	}
	if n := len(o.Stack); n < MinOfferStacks || n > MaxOfferStacks {
		return nil, &FieldError{Field: "OfferStack", Value: "", Reason: "must contain between 1 and 20 stacks"}
	}
	if o.BSPParticipant != "" {
		if err := ValidateParticipant(o.BSPParticipant); err != nil {
			return nil, err
		}
	}
	if o.SystemCode != "" {
		if err := ValidateSystemCode(o.SystemCode); err != nil {
			return nil, err
		}
	}

	el := etree.NewElement(o.ElementName())
	setAttr(el, "ResourceName", o.Resource)
	setTimeAttr(el, "StartTime", o.Start)
	setTimeAttr(el, "EndTime", o.End)
	setAttr(el, "Direction", string(o.Direction))
	setOptIntAttr(el, "DrPatternNumber", o.PatternNumber)
	setOptAttr(el, "BspParticipantName", o.BSPParticipant)
	setOptAttr(el, "CompanyShortName", o.CompanyShortName)
	setOptAttr(el, "OperatorCode", o.Operator)
	setOptAttr(el, "Area", string(o.Area))
	setOptAttr(el, "ResourceShortName", o.ResourceShortName)
	setOptAttr(el, "SystemCode", o.SystemCode)
	setOptTimeAttr(el, "SubmissionTime", o.SubmissionTime)
	for i := range o.Stack {
		child, err := o.Stack[i].marshal()
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}
	return el, nil
}

func (o *OfferData) UnmarshalElement(el *etree.Element) error {
	var err error
	o.Resource = attrString(el, "ResourceName")
	if o.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	if o.End, err = attrTime(el, "EndTime"); err != nil {
		return err
	}
	o.Direction = Direction(attrString(el, "Direction"))
	if o.PatternNumber, err = attrOptInt(el, "DrPatternNumber"); err != nil {
		return err
	}
	o.BSPParticipant = attrString(el, "BspParticipantName")
	o.CompanyShortName = attrString(el, "CompanyShortName")
	o.Operator = attrString(el, "OperatorCode")
	o.Area = AreaCode(attrString(el, "Area"))
	o.ResourceShortName = attrString(el, "ResourceShortName")
	o.SystemCode = attrString(el, "SystemCode")
	if o.SubmissionTime, err = attrOptTime(el, "SubmissionTime"); err != nil {
		return err
	}
	o.Stack = nil
	for _, child := range el.SelectElements("OfferStack") {
		var stack OfferStack
		if err := stack.unmarshal(child); err != nil {
			return err
		}
		o.Stack = append(o.Stack, stack)
	}
	return nil
}

// OfferCancel identifies an offer to withdraw. Multiple blocks are
// cancelled by setting End anywhere within the period to cancel.
type OfferCancel struct {
	Resource   string
	Start      time.Time
	End        time.Time
	MarketType MarketType
}

func (c *OfferCancel) ElementName() string { return "OfferCancel" }
func (c *OfferCancel) Kind() EnvelopeKind  { return KindCancel }

func (c *OfferCancel) MarshalElement() (*etree.Element, error) {
	if err := ValidateResourceName(c.Resource); err != nil {
		return nil, err
	}
	if c.MarketType == "" {
		return nil, &FieldError{Field: "MarketType", Value: "", Reason: "is required"}
	}
	el := etree.NewElement(c.ElementName())
	setAttr(el, "ResourceName", c.Resource)
	setTimeAttr(el, "StartTime", c.Start)
	setTimeAttr(el, "EndTime", c.End)
	setAttr(el, "MarketType", string(c.MarketType))
	return el, nil
}

func (c *OfferCancel) UnmarshalElement(el *etree.Element) error {
	var err error
	c.Resource = attrString(el, "ResourceName")
	if c.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	if c.End, err = attrTime(el, "EndTime"); err != nil {
		return err
	}
	c.MarketType = MarketType(attrString(el, "MarketType"))
	return nil
}

// OfferQuery filters the offers returned by an offer query. Without a
// resource the query returns every offer in the caller's region; TSOs and
// MOs must set Area.
type OfferQuery struct {
	MarketType MarketType
	Resource   string
	Area       AreaCode
}

func (q *OfferQuery) ElementName() string { return "OfferQuery" }
func (q *OfferQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *OfferQuery) MarshalElement() (*etree.Element, error) {
	if q.MarketType == "" {
		return nil, &FieldError{Field: "MarketType", Value: "", Reason: "is required"}
	}
	if q.Resource != "" {
		if err := ValidateResourceName(q.Resource); err != nil {
			return nil, err
		}
	}
	el := etree.NewElement(q.ElementName())
	setAttr(el, "MarketType", string(q.MarketType))
	setOptAttr(el, "ResourceName", q.Resource)
	setOptAttr(el, "Area", string(q.Area))
	return el, nil
}

func (q *OfferQuery) UnmarshalElement(el *etree.Element) error {
	q.MarketType = MarketType(attrString(el, "MarketType"))
	q.Resource = attrString(el, "ResourceName")
	q.Area = AreaCode(attrString(el, "Area"))
	return nil
}
