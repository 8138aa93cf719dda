package types

import (
	"time"

	"github.com/beevik/etree"
)

// ContractType describes how a power generation unit participates in the
// market.
type ContractType string

const (
	ContractMarket                    ContractType = "1"
	ContractMarketAndPowerSupply2     ContractType = "2"
	ContractPowerSupply2              ContractType = "3"
	ContractOnlyPowerSupply1          ContractType = "4"
	ContractMarketAndOnlyPowerSupply1 ContractType = "5"
)

// ResourceType describes how a power generation unit produces electricity.
type ResourceType string

const (
	ResourceThermal                ResourceType = "THERMAL"
	ResourceHydro                  ResourceType = "HYDRO"
	ResourcePump                   ResourceType = "PUMP"
	ResourceBattery                ResourceType = "BATTERY"
	ResourceVPPGeneration          ResourceType = "VPP_GEN"
	ResourceVPPGenerationAndDemand ResourceType = "VPP_GEN_AND_DEM"
	ResourceVPPDemand              ResourceType = "VPP_DEM"
)

// RecordStatus is the registration state of a resource submission.
type RecordStatus string

const (
	StatusWorking   RecordStatus = "WORKING"
	StatusSubmitted RecordStatus = "SUBMITTED"
	StatusApproved  RecordStatus = "APPROVED"
	StatusDeclined  RecordStatus = "DECLINED"
)

// ResourceData registers a power generation unit with the MMS, and is
// returned by resource queries. Registration payloads carry the
// participant on the payload rather than on the envelope.
type ResourceData struct {
	// Participant is the business entity the registration applies to.
	Participant string
	// Name uniquely identifies the power generation unit.
	Name         string
	ContractType ContractType
	ResourceType ResourceType
	Area         AreaCode
	// Start and End bound the unit's availability for trading.
	Start time.Time
	End   *time.Time
	// SystemCode is the grid code of the unit.
	SystemCode string
	// ShortName is an abbreviated display name, FullName the complete one.
	ShortName string
	FullName  string
	// BalancingGroup is required for non-VPP resources.
	BalancingGroup string
	Status         RecordStatus
	// TransactionID is assigned by the server.
	TransactionID string
	// Comments attached to the registration, carried as a child element.
	Comments string
}

func (r *ResourceData) ElementName() string { return "Resource" }
func (r *ResourceData) Kind() EnvelopeKind  { return KindSubmit }

func (r *ResourceData) MarshalElement() (*etree.Element, error) {
	if err := ValidateParticipant(r.Participant); err != nil {
		return nil, err
	}
	if err := ValidateResourceName(r.Name); err != nil {
		return nil, err
	}
	if r.ContractType == "" {
		return nil, &FieldError{Field: "ContractType", Value: "", Reason: "is required"}
	}
	if r.ResourceType == "" {
		return nil, &FieldError{Field: "ResourceType", Value: "", Reason: "is required"}
	}
	if err := ValidateSystemCode(r.SystemCode); err != nil {
		return nil, err
	}
	if err := validateLength("ResourceShortName", r.ShortName, 1, 10); err != nil {
		return nil, err
	}
	if err := validateLength("ResourceLongName", r.FullName, 1, 50); err != nil {
		return nil, err
	}
	if r.BalancingGroup != "" {
		if err := validateLength("BgCode", r.BalancingGroup, 5, 5); err != nil {
			return nil, err
		}
	}
	if r.TransactionID != "" {
		if err := ValidateTransactionID(r.TransactionID); err != nil {
			return nil, err
		}
	}
	if r.Comments != "" {
		if err := validateLength("Comments", r.Comments, 1, 128); err != nil {
			return nil, err
		}
	}

	status := r.Status
	if status == "" {
		status = StatusWorking
	}

	el := etree.NewElement(r.ElementName())
	setAttr(el, "ParticipantName", r.Participant)
	setAttr(el, "ResourceName", r.Name)
	setAttr(el, "ContractType", string(r.ContractType))
	setAttr(el, "ResourceType", string(r.ResourceType))
	setAttr(el, "Area", string(r.Area))
	setDateAttr(el, "StartDate", r.Start)
	setOptDateAttr(el, "EndDate", r.End)
	setAttr(el, "SystemCode", r.SystemCode)
	setAttr(el, "ResourceShortName", r.ShortName)
	setAttr(el, "ResourceLongName", r.FullName)
	setOptAttr(el, "BgCode", r.BalancingGroup)
	setAttr(el, "RecordStatus", string(status))
	setOptAttr(el, "TransactionId", r.TransactionID)
	if r.Comments != "" {
		el.CreateElement("Comments").SetText(r.Comments)
	}
	return el, nil
}

func (r *ResourceData) UnmarshalElement(el *etree.Element) error {
	var err error
	r.Participant = attrString(el, "ParticipantName")
	r.Name = attrString(el, "ResourceName")
	r.ContractType = ContractType(attrString(el, "ContractType"))
	r.ResourceType = ResourceType(attrString(el, "ResourceType"))
	r.Area = AreaCode(attrString(el, "Area"))
	if r.Start, err = attrDate(el, "StartDate"); err != nil {
		return err
	}
	if r.End, err = attrOptDate(el, "EndDate"); err != nil {
		return err
	}
	r.SystemCode = attrString(el, "SystemCode")
	r.ShortName = attrString(el, "ResourceShortName")
	r.FullName = attrString(el, "ResourceLongName")
	r.BalancingGroup = attrString(el, "BgCode")
	r.Status = RecordStatus(attrString(el, "RecordStatus"))
	r.TransactionID = attrString(el, "TransactionId")
	if comments := el.SelectElement("Comments"); comments != nil {
		r.Comments = comments.Text()
	} else {
		r.Comments = ""
	}
	return nil
}

// ResourceQuery filters registered resources. All fields are optional.
type ResourceQuery struct {
	Participant string
	Name        string
	Status      RecordStatus
}

func (q *ResourceQuery) ElementName() string { return "Resource" }
func (q *ResourceQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *ResourceQuery) MarshalElement() (*etree.Element, error) {
	if q.Participant != "" {
		if err := ValidateParticipant(q.Participant); err != nil {
			return nil, err
		}
	}
	if q.Name != "" {
		if err := ValidateResourceName(q.Name); err != nil {
			return nil, err
		}
	}
	el := etree.NewElement(q.ElementName())
	setOptAttr(el, "ParticipantName", q.Participant)
	setOptAttr(el, "ResourceName", q.Name)
	setOptAttr(el, "RecordStatus", string(q.Status))
	return el, nil
}

func (q *ResourceQuery) UnmarshalElement(el *etree.Element) error {
	q.Participant = attrString(el, "ParticipantName")
	q.Name = attrString(el, "ResourceName")
	q.Status = RecordStatus(attrString(el, "RecordStatus"))
	return nil
}
