package types

import (
	"time"

	"github.com/beevik/etree"
)

// Requirement is one reserve requirement block published by the grid
// operator.
type Requirement struct {
	Start     time.Time
	End       time.Time
	Direction Direction

	PrimaryQtyKw    *int
	Secondary1QtyKw *int
	Secondary2QtyKw *int
	Tertiary1QtyKw  *int
	Tertiary2QtyKw  *int

	// Compound minimums across product classes.
	PrimarySecondary1QtyKw *int
	PrimarySecondary2QtyKw *int
	PrimaryTertiary1QtyKw  *int
}

func (r *Requirement) marshal() (*etree.Element, error) {
	if r.Direction == "" {
		return nil, &FieldError{Field: "Direction", Value: "", Reason: "is required"}
	}
	el := etree.NewElement("Requirement")
	setTimeAttr(el, "StartTime", r.Start)
	setTimeAttr(el, "EndTime", r.End)
	setAttr(el, "Direction", string(r.Direction))
	setOptIntAttr(el, "PrimaryReserveQuantityInKw", r.PrimaryQtyKw)
	setOptIntAttr(el, "Secondary1ReserveQuantityInKw", r.Secondary1QtyKw)
	setOptIntAttr(el, "Secondary2ReserveQuantityInKw", r.Secondary2QtyKw)
	setOptIntAttr(el, "Tertiary1ReserveQuantityInKw", r.Tertiary1QtyKw)
	setOptIntAttr(el, "Tertiary2ReserveQuantityInKw", r.Tertiary2QtyKw)
	setOptIntAttr(el, "CompoundPriSec1ReserveQuantityInKw", r.PrimarySecondary1QtyKw)
	setOptIntAttr(el, "CompoundPriSec2ReserveQuantityInKw", r.PrimarySecondary2QtyKw)
	setOptIntAttr(el, "CompoundPriTer1ReserveQuantityInKw", r.PrimaryTertiary1QtyKw)
	return el, nil
}

func (r *Requirement) unmarshal(el *etree.Element) error {
	var err error
	if r.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	if r.End, err = attrTime(el, "EndTime"); err != nil {
		return err
	}
	r.Direction = Direction(attrString(el, "Direction"))
	if r.PrimaryQtyKw, err = attrOptInt(el, "PrimaryReserveQuantityInKw"); err != nil {
		return err
	}
	if r.Secondary1QtyKw, err = attrOptInt(el, "Secondary1ReserveQuantityInKw"); err != nil {
		return err
	}
	if r.Secondary2QtyKw, err = attrOptInt(el, "Secondary2ReserveQuantityInKw"); err != nil {
		return err
	}
	if r.Tertiary1QtyKw, err = attrOptInt(el, "Tertiary1ReserveQuantityInKw"); err != nil {
		return err
	}
	if r.Tertiary2QtyKw, err = attrOptInt(el, "Tertiary2ReserveQuantityInKw"); err != nil {
		return err
	}
	if r.PrimarySecondary1QtyKw, err = attrOptInt(el, "CompoundPriSec1ReserveQuantityInKw"); err != nil {
		return err
	}
	if r.PrimarySecondary2QtyKw, err = attrOptInt(el, "CompoundPriSec2ReserveQuantityInKw"); err != nil {
		return err
	}
	r.PrimaryTertiary1QtyKw, err = attrOptInt(el, "CompoundPriTer1ReserveQuantityInKw")
	return err
}

// ReserveRequirement is the set of requirements for one area.
type ReserveRequirement struct {
	Area         AreaCode
	Requirements []Requirement
}

func (r *ReserveRequirement) ElementName() string { return "ReserveRequirement" }
func (r *ReserveRequirement) Kind() EnvelopeKind  { return KindSubmit }

func (r *ReserveRequirement) MarshalElement() (*etree.Element, error) {
	if r.Area == "" {
		return nil, &FieldError{Field: "Area", Value: "", Reason: "is required"}
	}
	if len(r.Requirements) == 0 {
		return nil, &FieldError{Field: "Requirement", Value: "", Reason: "must contain at least one requirement"}
	}
	el := etree.NewElement(r.ElementName())
	setAttr(el, "Area", string(r.Area))
	for i := range r.Requirements {
		child, err := r.Requirements[i].marshal()
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}
	return el, nil
}

func (r *ReserveRequirement) UnmarshalElement(el *etree.Element) error {
	r.Area = AreaCode(attrString(el, "Area"))
	r.Requirements = nil
	for _, child := range el.SelectElements("Requirement") {
		var req Requirement
		if err := req.unmarshal(child); err != nil {
			return err
		}
		r.Requirements = append(r.Requirements, req)
	}
	return nil
}

// ReserveRequirementQuery requests the reserve requirements for a market,
// optionally restricted to one area.
type ReserveRequirementQuery struct {
	MarketType MarketType
	Area       AreaCode
}

func (q *ReserveRequirementQuery) ElementName() string { return "ReserveRequirementQuery" }
func (q *ReserveRequirementQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *ReserveRequirementQuery) MarshalElement() (*etree.Element, error) {
	if q.MarketType == "" {
		return nil, &FieldError{Field: "MarketType", Value: "", Reason: "is required"}
	}
	el := etree.NewElement(q.ElementName())
	setAttr(el, "MarketType", string(q.MarketType))
	setOptAttr(el, "Area", string(q.Area))
	return el, nil
}

func (q *ReserveRequirementQuery) UnmarshalElement(el *etree.Element) error {
	q.MarketType = MarketType(attrString(el, "MarketType"))
	q.Area = AreaCode(attrString(el, "Area"))
	return nil
}
