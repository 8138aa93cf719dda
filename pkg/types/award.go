package types

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// AwardQuery filters the award results returned by the server. With no
// area, linked area, or resource filter the results for all areas are
// returned.
type AwardQuery struct {
	MarketType MarketType
	Area       AreaCode
	LinkedArea AreaCode
	Resource   string
	Start      time.Time
	End        time.Time
}

func (q *AwardQuery) ElementName() string { return "AwardResultsQuery" }
func (q *AwardQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *AwardQuery) MarshalElement() (*etree.Element, error) {
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
	setOptAttr(el, "Area", string(q.Area))
	setOptAttr(el, "LinkedArea", string(q.LinkedArea))
	setOptAttr(el, "ResourceName", q.Resource)
	setTimeAttr(el, "StartTime", q.Start)
	setTimeAttr(el, "EndTime", q.End)
	return el, nil
}

func (q *AwardQuery) UnmarshalElement(el *etree.Element) error {
	var err error
	q.MarketType = MarketType(attrString(el, "MarketType"))
	q.Area = AreaCode(attrString(el, "Area"))
	q.LinkedArea = AreaCode(attrString(el, "LinkedArea"))
	q.Resource = attrString(el, "ResourceName")
	if q.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	q.End, err = attrTime(el, "EndTime")
	return err
}

// Award is one awarded contract within an award result block.
type Award struct {
	// ContractID is the 19-character contract identifier.
	ContractID string
	// JBMSID is the system-wide numeric identifier of the contract.
	JBMSID int64
	Area   AreaCode
	// LinkedArea is set for contracts spanning a second area.
	LinkedArea        AreaCode
	Resource          string
	ResourceShortName string
	SystemCode        string
	PatternNumber     *int
	BSPParticipant    string
	CompanyShortName  string
	Operator          string

	// OfferPrice and ContractPrice are in JPY/kW/segment.
	OfferPrice    float64
	ContractPrice float64
	// PerformanceEvaluationCoefficient is a percentage.
	PerformanceEvaluationCoefficient float64
	CorrectedUnitPrice               float64

	PrimaryOfferQtyKw    *int
	Secondary1OfferQtyKw *int
	Secondary2OfferQtyKw *int
	Tertiary1OfferQtyKw  *int
	Tertiary2OfferQtyKw  *int

	PrimaryAwardQtyKw    *int
	Secondary1AwardQtyKw *int
	Secondary2AwardQtyKw *int
	Tertiary1AwardQtyKw  *int
	Tertiary2AwardQtyKw  *int

	SubmissionTime *time.Time
	OfferID        string
}

func (a *Award) marshal() (*etree.Element, error) {
	el := etree.NewElement("AwardResultsData")
	setAttr(el, "ContractId", a.ContractID)
	setAttr(el, "JbmsId", strconv.FormatInt(a.JBMSID, 10))
	setAttr(el, "Area", string(a.Area))
	setOptAttr(el, "LinkedArea", string(a.LinkedArea))
	setAttr(el, "ResourceName", a.Resource)
	setAttr(el, "ResourceShortName", a.ResourceShortName)
	setAttr(el, "SystemCode", a.SystemCode)
	setOptIntAttr(el, "DrPatternNumber", a.PatternNumber)
	setAttr(el, "BspParticipantName", a.BSPParticipant)
	setAttr(el, "CompanyShortName", a.CompanyShortName)
	setAttr(el, "OperatorCode", a.Operator)
	setFloatAttr(el, "OfferPrice", a.OfferPrice)
	setFloatAttr(el, "ContractPrice", a.ContractPrice)
	setFloatAttr(el, "PerfEvalCoeff", a.PerformanceEvaluationCoefficient)
	setFloatAttr(el, "CorrectedUnitPrice", a.CorrectedUnitPrice)
	setOptIntAttr(el, "PrimaryOfferQuantityInKw", a.PrimaryOfferQtyKw)
	setOptIntAttr(el, "Secondary1OfferQuantityInKw", a.Secondary1OfferQtyKw)
	setOptIntAttr(el, "Secondary2OfferQuantityInKw", a.Secondary2OfferQtyKw)
	setOptIntAttr(el, "Tertiary1OfferQuantityInKw", a.Tertiary1OfferQtyKw)
	setOptIntAttr(el, "Tertiary2OfferQuantityInKw", a.Tertiary2OfferQtyKw)
	setOptIntAttr(el, "PrimaryAwardQuantityInKw", a.PrimaryAwardQtyKw)
	setOptIntAttr(el, "Secondary1AwardQuantityInKw", a.Secondary1AwardQtyKw)
	setOptIntAttr(el, "Secondary2AwardQuantityInKw", a.Secondary2AwardQtyKw)
	setOptIntAttr(el, "Tertiary1AwardQuantityInKw", a.Tertiary1AwardQtyKw)
	setOptIntAttr(el, "Tertiary2AwardQuantityInKw", a.Tertiary2AwardQtyKw)
	setOptTimeAttr(el, "SubmissionTime", a.SubmissionTime)
	setOptAttr(el, "OfferId", a.OfferID)
	return el, nil
}

func (a *Award) unmarshal(el *etree.Element) error {
	a.ContractID = attrString(el, "ContractId")
	if raw := attrString(el, "JbmsId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return &AttributeError{Element: el.Tag, Attribute: "JbmsId", Value: raw}
		}
		a.JBMSID = v
	}
	a.Area = AreaCode(attrString(el, "Area"))
	a.LinkedArea = AreaCode(attrString(el, "LinkedArea"))
	a.Resource = attrString(el, "ResourceName")
	a.ResourceShortName = attrString(el, "ResourceShortName")
	a.SystemCode = attrString(el, "SystemCode")
	var err error
	if a.PatternNumber, err = attrOptInt(el, "DrPatternNumber"); err != nil {
		return err
	}
	a.BSPParticipant = attrString(el, "BspParticipantName")
	a.CompanyShortName = attrString(el, "CompanyShortName")
	a.Operator = attrString(el, "OperatorCode")
	if a.OfferPrice, err = attrFloat(el, "OfferPrice"); err != nil {
		return err
	}
	if a.ContractPrice, err = attrFloat(el, "ContractPrice"); err != nil {
		return err
	}
	if a.PerformanceEvaluationCoefficient, err = attrFloat(el, "PerfEvalCoeff"); err != nil {
		return err
	}
	if a.CorrectedUnitPrice, err = attrFloat(el, "CorrectedUnitPrice"); err != nil {
		return err
	}
	for name, dst := range map[string]**int{
		"PrimaryOfferQuantityInKw":    &a.PrimaryOfferQtyKw,
		"Secondary1OfferQuantityInKw": &a.Secondary1OfferQtyKw,
		"Secondary2OfferQuantityInKw": &a.Secondary2OfferQtyKw,
		"Tertiary1OfferQuantityInKw":  &a.Tertiary1OfferQtyKw,
		"Tertiary2OfferQuantityInKw":  &a.Tertiary2OfferQtyKw,
		"PrimaryAwardQuantityInKw":    &a.PrimaryAwardQtyKw,
		"Secondary1AwardQuantityInKw": &a.Secondary1AwardQtyKw,
		"Secondary2AwardQuantityInKw": &a.Secondary2AwardQtyKw,
		"Tertiary1AwardQuantityInKw":  &a.Tertiary1AwardQtyKw,
		"Tertiary2AwardQuantityInKw":  &a.Tertiary2AwardQtyKw,
	} {
		if *dst, err = attrOptInt(el, name); err != nil {
			return err
		}
	}
	if a.SubmissionTime, err = attrOptTime(el, "SubmissionTime"); err != nil {
		return err
	}
	a.OfferID = attrString(el, "OfferId")
	return nil
}

// AwardResult groups the awarded contracts for one block and direction.
type AwardResult struct {
	Start     time.Time
	End       time.Time
	Direction Direction
	Data      []Award
}

func (r *AwardResult) marshal() (*etree.Element, error) {
	el := etree.NewElement("AwardResults")
	setTimeAttr(el, "StartTime", r.Start)
	setTimeAttr(el, "EndTime", r.End)
	setAttr(el, "Direction", string(r.Direction))
	for i := range r.Data {
		child, err := r.Data[i].marshal()
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}
	return el, nil
}

func (r *AwardResult) unmarshal(el *etree.Element) error {
	var err error
	if r.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	if r.End, err = attrTime(el, "EndTime"); err != nil {
		return err
	}
	r.Direction = Direction(attrString(el, "Direction"))
	r.Data = nil
	for _, child := range el.SelectElements("AwardResultsData") {
		var award Award
		if err := award.unmarshal(child); err != nil {
			return err
		}
		r.Data = append(r.Data, award)
	}
	return nil
}

// AwardResponse echoes the query criteria and carries the award results,
// nested under an AwardResultsQueryResponse child element.
type AwardResponse struct {
	AwardQuery
	Results []AwardResult
}

func (r *AwardResponse) MarshalElement() (*etree.Element, error) {
	el, err := r.AwardQuery.MarshalElement()
	if err != nil {
		return nil, err
	}
	if len(r.Results) > 0 {
		wrapper := el.CreateElement("AwardResultsQueryResponse")
		for i := range r.Results {
			child, err := r.Results[i].marshal()
			if err != nil {
				return nil, err
			}
			wrapper.AddChild(child)
		}
	}
	return el, nil
}

func (r *AwardResponse) UnmarshalElement(el *etree.Element) error {
	if err := r.AwardQuery.UnmarshalElement(el); err != nil {
		return err
	}
	r.Results = nil
	if wrapper := el.SelectElement("AwardResultsQueryResponse"); wrapper != nil {
		for _, child := range wrapper.SelectElements("AwardResults") {
			var result AwardResult
			if err := result.unmarshal(child); err != nil {
				return err
			}
			r.Results = append(r.Results, result)
		}
	}
	return nil
}
