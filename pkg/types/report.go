package types

import (
	"time"

	"github.com/beevik/etree"
)

// ApplicationType is the application a report request belongs to.
type ApplicationType string

const (
	ApplicationMarketReport ApplicationType = "MARKET_REPORT"
)

// ReportType is the data family a report covers.
type ReportType string

const (
	ReportTypeRegistration ReportType = "REGISTRATION"
	ReportTypeMarket       ReportType = "MA"
	ReportTypeInterface    ReportType = "INTERFACE"
	ReportTypeSwitch       ReportType = "SWITCH"
	ReportTypeSystem       ReportType = "SYSTEM"
)

// ReportSubType is the sub-category within a report type.
type ReportSubType string

const (
	ReportSubTypeAwards              ReportSubType = "AWARDS"
	ReportSubTypeMeritOrderList      ReportSubType = "MOL"
	ReportSubTypeOffers              ReportSubType = "OFFERS"
	ReportSubTypeAdjustmentPrices    ReportSubType = "BUP"
	ReportSubTypeReserveRequirements ReportSubType = "RESREQ"
	ReportSubTypeAccess              ReportSubType = "ACCESS"
	ReportSubTypeResources           ReportSubType = "RESOURCE"
	ReportSubTypeRequests            ReportSubType = "REQUEST"
)

// ReportName identifies a concrete report the server can generate.
type ReportName string

const (
	ReportTSOResourceList      ReportName = "ResourceList"
	ReportBSPResourceList      ReportName = "BSP_ResourceList"
	ReportTSOOffers            ReportName = "Offers"
	ReportBSPOffers            ReportName = "BSP_Offers"
	ReportReserveRequirements  ReportName = "ReserveReqs"
	ReportMeritOrderList       ReportName = "MOL"
	ReportTSOAwards            ReportName = "ContractResult"
	ReportBSPAwards            ReportName = "BSP_ContractResult"
	ReportTSOAwardsAfterGC     ReportName = "ContractResultAfterGC"
	ReportBSPAwardsAfterGC     ReportName = "BSP_ContractResultAfterGC"
	ReportTSOSwitchRequest     ReportName = "SwitchRequest"
	ReportTSOAccessLog         ReportName = "AccessLog"
)

// Periodicity is the cadence of a generated report.
type Periodicity string

const (
	PeriodicityYearly        Periodicity = "YEARLY"
	PeriodicityMonthly       Periodicity = "MONTHLY"
	PeriodicityDaily         Periodicity = "DAILY"
	PeriodicityHourly        Periodicity = "HOURLY"
	PeriodicityHalfHourly    Periodicity = "HALF_HOURLY"
	PeriodicitySubHourly     Periodicity = "SUB_HOURLY"
	PeriodicityOnDemand      Periodicity = "ON_DEMAND"
	PeriodicityNotApplicable Periodicity = "NOT_APPLICABLE"
)

// ParameterName names a report search parameter. Start and end time are
// mandatory on every report creation request.
type ParameterName string

const (
	ParamStartTime    ParameterName = "START_TIME"
	ParamEndTime      ParameterName = "END_TIME"
	ParamResourceName ParameterName = "RESOURCE_NAME"
	ParamMarketType   ParameterName = "MARKET_TYPE"
	ParamArea         ParameterName = "AREA"
)

// AccessClass is the audience a report is generated for.
type AccessClass string

const (
	AccessClassBSP AccessClass = "BSP"
	AccessClassTSO AccessClass = "TSO"
	AccessClassMO  AccessClass = "MO"
)

// FileType is the format a report file is produced in.
type FileType string

const (
	FileTypeCSV FileType = "CSV"
	FileTypeXML FileType = "XML"
)

// MaxReportParameters bounds the Param children of a creation request.
const MaxReportParameters = 5

// ReportBase is the envelope for report operations.
type ReportBase struct {
	Application ApplicationType
	Participant string
}

func (r *ReportBase) ElementName() string { return "MarketReport" }
func (r *ReportBase) Kind() EnvelopeKind  { return KindReport }

func (r *ReportBase) MarshalElement() (*etree.Element, error) {
	if r.Application == "" {
		return nil, &FieldError{Field: "ApplicationType", Value: "", Reason: "is required"}
	}
	if err := ValidateParticipant(r.Participant); err != nil {
		return nil, err
	}
	el := etree.NewElement(r.ElementName())
	setAttr(el, "ApplicationType", string(r.Application))
	setAttr(el, "ParticipantName", r.Participant)
	return el, nil
}

func (r *ReportBase) UnmarshalElement(el *etree.Element) error {
	r.Application = ApplicationType(attrString(el, "ApplicationType"))
	r.Participant = attrString(el, "ParticipantName")
	return nil
}

// ReportMetadata identifies one report: its type, cadence, name, and the
// trade date it covers.
type ReportMetadata struct {
	Type        ReportType
	SubType     ReportSubType
	Periodicity Periodicity
	Name        ReportName
	Date        time.Time
}

func (m *ReportMetadata) validate() error {
	if m.Type == "" {
		return &FieldError{Field: "ReportType", Value: "", Reason: "is required"}
	}
	if m.SubType == "" {
		return &FieldError{Field: "ReportSubType", Value: "", Reason: "is required"}
	}
	if m.Periodicity == "" {
		return &FieldError{Field: "Periodicity", Value: "", Reason: "is required"}
	}
	if m.Name == "" {
		return &FieldError{Field: "ReportName", Value: "", Reason: "is required"}
	}
	return nil
}

func (m *ReportMetadata) marshalAttrs(el *etree.Element) {
	setAttr(el, "ReportType", string(m.Type))
	setAttr(el, "ReportSubType", string(m.SubType))
	setAttr(el, "Periodicity", string(m.Periodicity))
	setAttr(el, "ReportName", string(m.Name))
	setDateAttr(el, "Date", m.Date)
}

func (m *ReportMetadata) unmarshalAttrs(el *etree.Element) error {
	m.Type = ReportType(attrString(el, "ReportType"))
	m.SubType = ReportSubType(attrString(el, "ReportSubType"))
	m.Periodicity = Periodicity(attrString(el, "Periodicity"))
	m.Name = ReportName(attrString(el, "ReportName"))
	date, err := attrDate(el, "Date")
	if err != nil {
		return err
	}
	m.Date = date
	return nil
}

// Parameter is one search criterion on a report creation request.
type Parameter struct {
	Name  ParameterName
	Value string
}

// ReportItem is one generated report in a listing, available for download
// until its expiry date.
type ReportItem struct {
	ReportMetadata
	AccessClass AccessClass
	Filename    string
	FileType    FileType
	// TransactionID addresses the report when downloading it.
	TransactionID string
	FileSizeBytes int64
	Binary        bool
	ExpiryDate    time.Time
	Description   string
}

func (i *ReportItem) unmarshal(el *etree.Element) error {
	if err := i.ReportMetadata.unmarshalAttrs(el); err != nil {
		return err
	}
	i.AccessClass = AccessClass(attrString(el, "AccessClass"))
	i.Filename = attrString(el, "FileName")
	i.FileType = FileType(attrString(el, "FileType"))
	i.TransactionID = attrString(el, "TransactionId")
	size, err := attrInt(el, "FileSize")
	if err != nil {
		return err
	}
	i.FileSizeBytes = int64(size)
	if i.Binary, err = attrBool(el, "BinaryFile"); err != nil {
		return err
	}
	if i.ExpiryDate, err = attrDate(el, "ExpiryDate"); err != nil {
		return err
	}
	i.Description = attrString(el, "Description")
	return nil
}

// NewReportRequest asks the server to generate a report. Generated reports
// are retained for two days; identical requests within that window are
// rejected. Requests should be issued one at a time, waiting for the
// transaction ID before the next.
type NewReportRequest struct {
	ReportMetadata
	// BSPName restricts the report to one BSP, for TSO and MO callers.
	BSPName    string
	Parameters []Parameter
}

func (r *NewReportRequest) ElementName() string { return "ReportCreateRequest" }
func (r *NewReportRequest) Kind() EnvelopeKind  { return KindReport }

func (r *NewReportRequest) MarshalElement() (*etree.Element, error) {
	if err := r.ReportMetadata.validate(); err != nil {
		return nil, err
	}
	if r.BSPName != "" {
		if err := ValidateParticipant(r.BSPName); err != nil {
			return nil, err
		}
	}
	if len(r.Parameters) > MaxReportParameters {
		return nil, &FieldError{Field: "Param", Value: "", Reason: "must contain at most 5 parameters"}
	}
	el := etree.NewElement(r.ElementName())
	r.ReportMetadata.marshalAttrs(el)
	setOptAttr(el, "BSPName", r.BSPName)
	for _, p := range r.Parameters {
		if err := validateLength("Value", p.Value, 1, 200); err != nil {
			return nil, err
		}
		param := el.CreateElement("Param")
		setAttr(param, "Name", string(p.Name))
		setAttr(param, "Value", p.Value)
	}
	return el, nil
}

func (r *NewReportRequest) UnmarshalElement(el *etree.Element) error {
	if err := r.ReportMetadata.unmarshalAttrs(el); err != nil {
		return err
	}
	r.BSPName = attrString(el, "BSPName")
	r.Parameters = nil
	for _, child := range el.SelectElements("Param") {
		r.Parameters = append(r.Parameters, Parameter{
			Name:  ParameterName(attrString(child, "Name")),
			Value: attrString(child, "Value"),
		})
	}
	return nil
}

// NewReportResponse is the creation request as echoed by the server. The
// transaction ID is not part of the XML; the client attaches it from the
// processing statistics of the response.
type NewReportResponse struct {
	NewReportRequest
	TransactionID string
}

// ListReportRequest asks for the reports already generated for the given
// metadata.
type ListReportRequest struct {
	ReportMetadata
}

func (r *ListReportRequest) ElementName() string { return "ReportListRequest" }
func (r *ListReportRequest) Kind() EnvelopeKind  { return KindReport }

func (r *ListReportRequest) MarshalElement() (*etree.Element, error) {
	if err := r.ReportMetadata.validate(); err != nil {
		return nil, err
	}
	el := etree.NewElement(r.ElementName())
	r.ReportMetadata.marshalAttrs(el)
	return el, nil
}

func (r *ListReportRequest) UnmarshalElement(el *etree.Element) error {
	return r.ReportMetadata.unmarshalAttrs(el)
}

// ListReportResponse echoes the listing criteria and carries the matching
// reports nested under a ReportListResponse child element.
type ListReportResponse struct {
	ListReportRequest
	Reports []ReportItem
}

func (r *ListReportResponse) UnmarshalElement(el *etree.Element) error {
	if err := r.ListReportRequest.UnmarshalElement(el); err != nil {
		return err
	}
	r.Reports = nil
	if wrapper := el.SelectElement("ReportListResponse"); wrapper != nil {
		for _, child := range wrapper.SelectElements("ReportItem") {
			var item ReportItem
			if err := item.unmarshal(child); err != nil {
				return err
			}
			r.Reports = append(r.Reports, item)
		}
	}
	return nil
}

// ReportDownloadRequest retrieves a generated report by its transaction ID.
// Downloads should be made one file at a time.
type ReportDownloadRequest struct {
	TransactionID string
}

func (r *ReportDownloadRequest) ElementName() string { return "ReportDownloadRequestTrnID" }
func (r *ReportDownloadRequest) Kind() EnvelopeKind  { return KindReport }

func (r *ReportDownloadRequest) MarshalElement() (*etree.Element, error) {
	if err := ValidateTransactionID(r.TransactionID); err != nil {
		return nil, err
	}
	el := etree.NewElement(r.ElementName())
	setAttr(el, "TransactionId", r.TransactionID)
	return el, nil
}

func (r *ReportDownloadRequest) UnmarshalElement(el *etree.Element) error {
	r.TransactionID = attrString(el, "TransactionId")
	return nil
}

// OutboundData is the envelope wrapping downloaded report content.
type OutboundData struct {
	DatasetName ReportName
	DatasetType Periodicity
	Date        *time.Time
	DateType    QueryType
	// Timezone is the DateTimeIndicator of the dataset, always JST.
	Timezone    string
	PublishTime *time.Time
}

func (o *OutboundData) ElementName() string { return "OutboundData" }
func (o *OutboundData) Kind() EnvelopeKind  { return KindOutbound }

func (o *OutboundData) MarshalElement() (*etree.Element, error) {
	el := etree.NewElement(o.ElementName())
	setOptAttr(el, "DatasetName", string(o.DatasetName))
	setOptAttr(el, "DatasetType", string(o.DatasetType))
	setOptDateAttr(el, "Date", o.Date)
	setOptAttr(el, "DateType", string(o.DateType))
	setOptAttr(el, "DateTimeIndicator", o.Timezone)
	setOptTimeAttr(el, "PublishTime", o.PublishTime)
	return el, nil
}

func (o *OutboundData) UnmarshalElement(el *etree.Element) error {
	o.DatasetName = ReportName(attrString(el, "DatasetName"))
	o.DatasetType = Periodicity(attrString(el, "DatasetType"))
	date, err := attrOptDate(el, "Date")
	if err != nil {
		return err
	}
	o.Date = date
	o.DateType = QueryType(attrString(el, "DateType"))
	o.Timezone = attrString(el, "DateTimeIndicator")
	o.PublishTime, err = attrOptTime(el, "PublishTime")
	return err
}

// BSPResourceListItem is one line of the BSP resource list report.
type BSPResourceListItem struct {
	// Row is the line number within the report.
	Row              *int
	Participant      string
	CompanyShortName string
	Start            time.Time
	End              *time.Time
	ShortName        string
	Name             string
	SystemCode       string
	Area             AreaCode

	// Product participation flags per reserve class.
	HasPrimary    *bool
	HasSecondary1 *bool
	HasSecondary2 *bool
	HasTertiary1  *bool
	HasTertiary2  *bool

	ContractType ContractType
}

func (i *BSPResourceListItem) ElementName() string { return "BSP_ResourceList" }
func (i *BSPResourceListItem) Kind() EnvelopeKind  { return KindOutbound }

func (i *BSPResourceListItem) MarshalElement() (*etree.Element, error) {
	el := etree.NewElement(i.ElementName())
	setOptIntAttr(el, "ROW", i.Row)
	setAttr(el, "ParticipantName", i.Participant)
	setAttr(el, "CompanyShortName", i.CompanyShortName)
	setDateAttr(el, "StartDate", i.Start)
	setOptDateAttr(el, "EndDate", i.End)
	setAttr(el, "ResourceShortName", i.ShortName)
	setAttr(el, "ResourceName", i.Name)
	setAttr(el, "SystemCode", i.SystemCode)
	setAttr(el, "Area", string(i.Area))
	setOptBoolAttr(el, "Pri", i.HasPrimary)
	setOptBoolAttr(el, "Sec1", i.HasSecondary1)
	setOptBoolAttr(el, "Sec2", i.HasSecondary2)
	setOptBoolAttr(el, "Ter1", i.HasTertiary1)
	setOptBoolAttr(el, "Ter2", i.HasTertiary2)
	setOptAttr(el, "ContractType", string(i.ContractType))
	return el, nil
}

func (i *BSPResourceListItem) UnmarshalElement(el *etree.Element) error {
	var err error
	if i.Row, err = attrOptInt(el, "ROW"); err != nil {
		return err
	}
	i.Participant = attrString(el, "ParticipantName")
	i.CompanyShortName = attrString(el, "CompanyShortName")
	if i.Start, err = attrDate(el, "StartDate"); err != nil {
		return err
	}
	if i.End, err = attrOptDate(el, "EndDate"); err != nil {
		return err
	}
	i.ShortName = attrString(el, "ResourceShortName")
	i.Name = attrString(el, "ResourceName")
	i.SystemCode = attrString(el, "SystemCode")
	i.Area = AreaCode(attrString(el, "Area"))
	if i.HasPrimary, err = attrOptBool(el, "Pri"); err != nil {
		return err
	}
	if i.HasSecondary1, err = attrOptBool(el, "Sec1"); err != nil {
		return err
	}
	if i.HasSecondary2, err = attrOptBool(el, "Sec2"); err != nil {
		return err
	}
	if i.HasTertiary1, err = attrOptBool(el, "Ter1"); err != nil {
		return err
	}
	if i.HasTertiary2, err = attrOptBool(el, "Ter2"); err != nil {
		return err
	}
	i.ContractType = ContractType(attrString(el, "ContractType"))
	return nil
}
