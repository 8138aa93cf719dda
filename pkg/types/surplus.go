package types

import (
	"time"

	"github.com/beevik/etree"
)

// rejection pairs a reject category with its free-text reason, 1-50
// characters when present.
func marshalRejection(el *etree.Element, flagAttr, reasonAttr, flag, reason string) error {
	setOptAttr(el, flagAttr, flag)
	if reason != "" {
		if err := validateLength(reasonAttr, reason, 1, 50); err != nil {
			return err
		}
		setAttr(el, reasonAttr, reason)
	}
	return nil
}

// SurplusCapacitySubmit reports the remaining reserve of a resource for a
// block range, with per-request rejection flags where a grid request cannot
// be honored.
type SurplusCapacitySubmit struct {
	// Resource is the code of the resource being reported on.
	Resource string
	// PatternNumber is the DR pattern the capacity applies to, 1-20.
	PatternNumber int
	Start         time.Time
	End           time.Time

	// UpwardCapacityKw and DownwardCapacityKw are not submitted for
	// standalone generators.
	UpwardCapacityKw        *int
	UpwardRejected          RejectCategory
	UpwardRejectionReason   string
	DownwardCapacityKw      *int
	DownwardRejected        RejectCategory
	DownwardRejectionReason string

	VoltageAdjustmentRejected        OperationalRejectCategory
	VoltageAdjustmentRejectionReason string
	BlackStartRejected               OperationalRejectCategory
	BlackStartRejectionReason        string

	// OverPowerCapacityKw is the extra reserve available under over-power
	// conditions; PeakModeCapacityKw the extra reserve during peak demand.
	OverPowerCapacityKw      *int
	OverPowerRejected        OperationalRejectCategory
	OverPowerRejectionReason string
	PeakModeCapacityKw       *int
	PeakModeRejected         OperationalRejectCategory
	PeakModeRejectionReason  string

	SystemSecurityPumpRejected        OperationalRejectCategory
	SystemSecurityPumpRejectionReason string
}

func (s *SurplusCapacitySubmit) ElementName() string { return "RemainingReserveData" }
func (s *SurplusCapacitySubmit) Kind() EnvelopeKind  { return KindSubmit }

func (s *SurplusCapacitySubmit) MarshalElement() (*etree.Element, error) {
	if err := ValidateResourceName(s.Resource); err != nil {
		return nil, err
	}
	if err := validateRange("DrPatternNumber", s.PatternNumber, 1, 20); err != nil {
		return nil, err
	}
	for field, v := range map[string]*int{
		"RemainingReserveUp":          s.UpwardCapacityKw,
		"RemainingReserveDown":        s.DownwardCapacityKw,
		"OverPowerRemainingReserveUp": s.OverPowerCapacityKw,
		"PeakModeRemainingReserveUp":  s.PeakModeCapacityKw,
	} {
		if err := validateOptPower(field, v); err != nil {
			return nil, err
		}
	}

	el := etree.NewElement(s.ElementName())
	setAttr(el, "ResourceName", s.Resource)
	setIntAttr(el, "DrPatternNumber", s.PatternNumber)
	setTimeAttr(el, "StartTime", s.Start)
	setTimeAttr(el, "EndTime", s.End)
	setOptIntAttr(el, "RemainingReserveUp", s.UpwardCapacityKw)
	if err := marshalRejection(el, "RemainingReserveUpRejectFlag", "RemainingReserveUpRejectReason",
		string(s.UpwardRejected), s.UpwardRejectionReason); err != nil {
		return nil, err
	}
	setOptIntAttr(el, "RemainingReserveDown", s.DownwardCapacityKw)
	if err := marshalRejection(el, "RemainingReserveDownRejectFlag", "RemainingReserveDownRejectReason",
		string(s.DownwardRejected), s.DownwardRejectionReason); err != nil {
		return nil, err
	}
	if err := marshalRejection(el, "VoltageAdjustmentRejectFlag", "VoltageAdjustmentRejectReason",
		string(s.VoltageAdjustmentRejected), s.VoltageAdjustmentRejectionReason); err != nil {
		return nil, err
	}
	if err := marshalRejection(el, "BlackStartRejectFlag", "BlackStartRejectReason",
		string(s.BlackStartRejected), s.BlackStartRejectionReason); err != nil {
		return nil, err
	}
	setOptIntAttr(el, "OverPowerRemainingReserveUp", s.OverPowerCapacityKw)
	if err := marshalRejection(el, "OverPowerRejectFlag", "OverPowerRejectReason",
		string(s.OverPowerRejected), s.OverPowerRejectionReason); err != nil {
		return nil, err
	}
	setOptIntAttr(el, "PeakModeRemainingReserveUp", s.PeakModeCapacityKw)
	if err := marshalRejection(el, "PeakModeRejectFlag", "PeakModeRejectReason",
		string(s.PeakModeRejected), s.PeakModeRejectionReason); err != nil {
		return nil, err
	}
	if err := marshalRejection(el, "SystemSecurityPumpRejectFlag", "SystemSecurityPumpRejectReason",
		string(s.SystemSecurityPumpRejected), s.SystemSecurityPumpRejectionReason); err != nil {
		return nil, err
	}
	return el, nil
}

func (s *SurplusCapacitySubmit) UnmarshalElement(el *etree.Element) error {
	var err error
	s.Resource = attrString(el, "ResourceName")
	if s.PatternNumber, err = attrInt(el, "DrPatternNumber"); err != nil {
		return err
	}
	if s.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	if s.End, err = attrTime(el, "EndTime"); err != nil {
		return err
	}
	if s.UpwardCapacityKw, err = attrOptInt(el, "RemainingReserveUp"); err != nil {
		return err
	}
	s.UpwardRejected = RejectCategory(attrString(el, "RemainingReserveUpRejectFlag"))
	s.UpwardRejectionReason = attrString(el, "RemainingReserveUpRejectReason")
	if s.DownwardCapacityKw, err = attrOptInt(el, "RemainingReserveDown"); err != nil {
		return err
	}
	s.DownwardRejected = RejectCategory(attrString(el, "RemainingReserveDownRejectFlag"))
	s.DownwardRejectionReason = attrString(el, "RemainingReserveDownRejectReason")
	s.VoltageAdjustmentRejected = OperationalRejectCategory(attrString(el, "VoltageAdjustmentRejectFlag"))
	s.VoltageAdjustmentRejectionReason = attrString(el, "VoltageAdjustmentRejectReason")
	s.BlackStartRejected = OperationalRejectCategory(attrString(el, "BlackStartRejectFlag"))
	s.BlackStartRejectionReason = attrString(el, "BlackStartRejectReason")
	if s.OverPowerCapacityKw, err = attrOptInt(el, "OverPowerRemainingReserveUp"); err != nil {
		return err
	}
	s.OverPowerRejected = OperationalRejectCategory(attrString(el, "OverPowerRejectFlag"))
	s.OverPowerRejectionReason = attrString(el, "OverPowerRejectReason")
	if s.PeakModeCapacityKw, err = attrOptInt(el, "PeakModeRemainingReserveUp"); err != nil {
		return err
	}
	s.PeakModeRejected = OperationalRejectCategory(attrString(el, "PeakModeRejectFlag"))
	s.PeakModeRejectionReason = attrString(el, "PeakModeRejectReason")
	s.SystemSecurityPumpRejected = OperationalRejectCategory(attrString(el, "SystemSecurityPumpRejectFlag"))
	s.SystemSecurityPumpRejectionReason = attrString(el, "SystemSecurityPumpRejectReason")
	return nil
}

// SurplusCapacityData is the surplus capacity record as returned by
// queries, with the identity fields the server adds.
type SurplusCapacityData struct {
	SurplusCapacitySubmit
	Area              AreaCode
	Participant       string
	CompanyShortName  string
	SystemCode        string
	ResourceShortName string
}

func (d *SurplusCapacityData) UnmarshalElement(el *etree.Element) error {
	if err := d.SurplusCapacitySubmit.UnmarshalElement(el); err != nil {
		return err
	}
	d.Area = AreaCode(attrString(el, "Area"))
	d.Participant = attrString(el, "ParticipantName")
	d.CompanyShortName = attrString(el, "CompanyShortName")
	d.SystemCode = attrString(el, "SystemCode")
	d.ResourceShortName = attrString(el, "ResourceShortName")
	return nil
}

// SurplusCapacityQuery retrieves the surplus capacity records for a block
// range, optionally restricted to one resource or DR pattern.
type SurplusCapacityQuery struct {
	Resource      string
	PatternNumber *int
	Start         time.Time
	End           time.Time
}

func (q *SurplusCapacityQuery) ElementName() string { return "RemainingReserveDataQuery" }
func (q *SurplusCapacityQuery) Kind() EnvelopeKind  { return KindQuery }

func (q *SurplusCapacityQuery) MarshalElement() (*etree.Element, error) {
	if q.Resource != "" {
		if err := ValidateResourceName(q.Resource); err != nil {
			return nil, err
		}
	}
	if q.PatternNumber != nil {
		if err := validateRange("DrPatternNumber", *q.PatternNumber, 1, 20); err != nil {
			return nil, err
		}
	}
	el := etree.NewElement(q.ElementName())
	setOptAttr(el, "ResourceName", q.Resource)
	setOptIntAttr(el, "DrPatternNumber", q.PatternNumber)
	setTimeAttr(el, "StartTime", q.Start)
	setTimeAttr(el, "EndTime", q.End)
	return el, nil
}

func (q *SurplusCapacityQuery) UnmarshalElement(el *etree.Element) error {
	var err error
	q.Resource = attrString(el, "ResourceName")
	if q.PatternNumber, err = attrOptInt(el, "DrPatternNumber"); err != nil {
		return err
	}
	if q.Start, err = attrTime(el, "StartTime"); err != nil {
		return err
	}
	q.End, err = attrTime(el, "EndTime")
	return err
}
