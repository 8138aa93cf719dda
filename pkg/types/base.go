package types

import (
	"strconv"

	"github.com/beevik/etree"
)

// ValidationStatus is the per-element validation result the server attaches
// to response documents.
type ValidationStatus string

const (
	// ValidationPassed indicates every datum in the element passed validation.
	ValidationPassed ValidationStatus = "PASSED"
	// ValidationWarning indicates some data triggered warnings.
	ValidationWarning ValidationStatus = "WARNING"
	// ValidationPassedPartial indicates some data failed validation.
	ValidationPassedPartial ValidationStatus = "PASSED_PARTIAL"
	// ValidationFailed indicates the element failed validation.
	ValidationFailed ValidationStatus = "FAILED"
	// ValidationNotDone indicates validation has not completed for the element.
	ValidationNotDone ValidationStatus = "NOT_DONE"
)

// Acceptable reports whether the status may accompany a successful element.
// Only a full pass or a not-yet-validated element is acceptable; warnings and
// partial passes are treated as failures.
func (s ValidationStatus) Acceptable() bool {
	return s == ValidationPassed || s == ValidationNotDone
}

// EnvelopeKind classifies the operation an envelope or payload belongs to.
// An envelope may only wrap payloads of its own kind.
type EnvelopeKind int

const (
	KindQuery EnvelopeKind = iota
	KindSubmit
	KindCancel
	KindReport
	KindOutbound
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindSubmit:
		return "submit"
	case KindCancel:
		return "cancel"
	case KindReport:
		return "report"
	case KindOutbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// Payload is the contract every MMS business object fulfils: it names its
// XML element, declares its operation kind, and converts itself to and from
// an etree element. MarshalElement validates field constraints and fails
// rather than produce a document the server would reject.
type Payload interface {
	ElementName() string
	Kind() EnvelopeKind
	MarshalElement() (*etree.Element, error)
	UnmarshalElement(el *etree.Element) error
}

// Envelope is a Payload that serves as the operation header wrapping the
// request data. The distinction is positional: envelopes sit directly under
// the document root and carry participant/user/date metadata.
type Envelope interface {
	Payload
}

// Message is a single informational, warning, or error entry attached to a
// response element. The server puts short codes in the Code attribute and
// free text in the element body; either may be absent.
type Message struct {
	Code string
	Text string
}

func (m Message) String() string {
	if m.Code != "" {
		return m.Code
	}
	return m.Text
}

// Messages groups the message entries attached to one response element.
type Messages struct {
	Information []Message
	Warnings    []Message
	Errors      []Message
}

// Empty reports whether no messages of any level are present.
func (m Messages) Empty() bool {
	return len(m.Information) == 0 && len(m.Warnings) == 0 && len(m.Errors) == 0
}

// MessagesFromElement decodes a <Messages> element.
func MessagesFromElement(el *etree.Element) Messages {
	var out Messages
	for _, child := range el.ChildElements() {
		msg := Message{
			Code: child.SelectAttrValue("Code", ""),
			Text: child.Text(),
		}
		switch child.Tag {
		case "Information":
			out.Information = append(out.Information, msg)
		case "Warning":
			out.Warnings = append(out.Warnings, msg)
		case "Error":
			out.Errors = append(out.Errors, msg)
		}
	}
	return out
}

// ProcessingStatistics summarizes how the server processed the request.
// All counts are optional on the wire.
type ProcessingStatistics struct {
	Received      *int
	Valid         *int
	Invalid       *int
	Successful    *int
	Unsuccessful  *int
	TimeMs        *int
	TransactionID string
	Timestamp     string
	TimestampXML  string
}

// UnmarshalElement decodes a <ProcessingStatistics> element.
func (s *ProcessingStatistics) UnmarshalElement(el *etree.Element) error {
	var err error
	if s.Received, err = attrOptInt(el, "Received"); err != nil {
		return err
	}
	if s.Valid, err = attrOptInt(el, "Valid"); err != nil {
		return err
	}
	if s.Invalid, err = attrOptInt(el, "Invalid"); err != nil {
		return err
	}
	if s.Successful, err = attrOptInt(el, "Successful"); err != nil {
		return err
	}
	if s.Unsuccessful, err = attrOptInt(el, "Unsuccessful"); err != nil {
		return err
	}
	if s.TimeMs, err = attrOptInt(el, "ProcessingTimeMs"); err != nil {
		return err
	}
	s.TransactionID = el.SelectAttrValue("TransactionId", "")
	s.Timestamp = el.SelectAttrValue("TimeStamp", "")
	s.TimestampXML = el.SelectAttrValue("XmlTimeStamp", "")
	return nil
}

// InvalidCount returns the number of invalid items, zero when unreported.
func (s *ProcessingStatistics) InvalidCount() int {
	if s == nil || s.Invalid == nil {
		return 0
	}
	return *s.Invalid
}

// ResponseCommon carries the success flag and validation status the server
// stamps on each annotated element of a response document.
type ResponseCommon struct {
	Success    bool
	Validation ValidationStatus
}

// UnmarshalAttrs reads the Success and Validation attributes from el.
// Report documents use the attribute name ValidationStatus instead of
// Validation; both are checked. A missing validation attribute decodes as
// NOT_DONE, a missing success attribute as true, matching server behavior
// for elements it does not annotate.
func (rc *ResponseCommon) UnmarshalAttrs(el *etree.Element) {
	rc.Success = el.SelectAttrValue("Success", "true") == "true"
	v := el.SelectAttrValue("Validation", "")
	if v == "" {
		v = el.SelectAttrValue("ValidationStatus", "")
	}
	if v == "" {
		rc.Validation = ValidationNotDone
	} else {
		rc.Validation = ValidationStatus(v)
	}
}

// OK reports whether the element is in an acceptable state: the server
// marked it successful and its validation status is PASSED or NOT_DONE.
func (rc ResponseCommon) OK() bool {
	return rc.Success && rc.Validation.Acceptable()
}

// BaseResponse holds the document-level data decoded from a response:
// processing statistics, the envelope's validation state, and the messages
// attached anywhere in the document, keyed by element path (for example
// "MarketData.MarketSubmit.OfferData[0]").
type BaseResponse struct {
	Statistics     *ProcessingStatistics
	EnvelopeStatus ResponseCommon
	Messages       map[string]Messages
}

// ResponseData pairs one decoded payload with its validation state.
type ResponseData[P Payload] struct {
	Data   P
	Status ResponseCommon
}

// Response is a decoded single-payload response document.
type Response[E Envelope, P Payload] struct {
	BaseResponse
	Envelope E
	Payload  *ResponseData[P]
}

// Data returns the decoded payload, or the zero value when the server
// returned none.
func (r *Response[E, P]) Data() P {
	if r.Payload == nil {
		var zero P
		return zero
	}
	return r.Payload.Data
}

// MultiResponse is a decoded response document carrying an ordered sequence
// of payloads.
type MultiResponse[E Envelope, P Payload] struct {
	BaseResponse
	Envelope E
	Payloads []ResponseData[P]
}

// Data returns the decoded payloads in server order.
func (r *MultiResponse[E, P]) Data() []P {
	out := make([]P, len(r.Payloads))
	for i, p := range r.Payloads {
		out[i] = p.Data
	}
	return out
}

func attrOptInt(el *etree.Element, name string) (*int, error) {
	attr := el.SelectAttr(name)
	if attr == nil || attr.Value == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(attr.Value)
	if err != nil {
		return nil, &AttributeError{Element: el.Tag, Attribute: name, Value: attr.Value}
	}
	return &v, nil
}
