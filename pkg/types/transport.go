package types

import "fmt"

// RequestType routes a request to the correct MMS subsystem. The first four
// values are valid on the Market Initiator (MI) interface; OMI requests use
// the last.
type RequestType string

const (
	RequestTypeInfo         RequestType = "mp.info"
	RequestTypeMarket       RequestType = "mp.market"
	RequestTypeRegistration RequestType = "mp.registration"
	RequestTypeReport       RequestType = "mp.report"
	RequestTypeOMI          RequestType = "mp.omi"
)

// RequestDataType is the declared format of the request payload. JSON is
// defined by the protocol but not currently accepted by the server.
type RequestDataType string

const (
	RequestDataXML  RequestDataType = "XML"
	RequestDataJSON RequestDataType = "JSON"
)

// ResponseDataType is the declared format of a response payload. Only XML
// responses are decoded by this client.
type ResponseDataType string

const (
	ResponseDataXML  ResponseDataType = "XML"
	ResponseDataHTML ResponseDataType = "HTML"
	ResponseDataCSV  ResponseDataType = "CSV"
	ResponseDataJSON ResponseDataType = "JSON"
	ResponseDataTXT  ResponseDataType = "TXT"
)

// Attachment limits. OMI requests allow 20 attachments, MI requests 40.
const (
	MaxAttachmentsOMI = 20
	MaxAttachmentsMI  = 40
)

// Signature length bounds imposed by the transport schema.
const (
	MinSignatureLen = 1
	MaxSignatureLen = 2048
)

// Attachment is a named binary file carried alongside a request or
// response, signed independently of the main payload.
type Attachment struct {
	// Name of the attachment file.
	Name string
	// Data is the base64-encoded file content.
	Data string
	// Signature over the raw file content, base64-encoded.
	Signature string
}

// MmsRequest is the outer transport structure submitted to the MMS. The
// payload is the base64 of the canonicalized business document; the
// signature is computed over those same canonical bytes.
type MmsRequest struct {
	// Subsystem the request is routed to.
	Subsystem RequestType
	// AsAdmin marks requests made in the market operator role.
	AsAdmin bool
	// Compressed marks a compressed payload. Reserved; always false.
	Compressed bool
	// DataType is the payload format. Only XML is supported.
	DataType RequestDataType
	// RespondWithRequest asks the server to echo the request data on success.
	RespondWithRequest bool
	// ResponseCompressed asks for a compressed response. Reserved; always false.
	ResponseCompressed bool
	// Signature is the base64 signature over the canonical payload bytes.
	Signature string
	// Payload is the base64-encoded business document.
	Payload string
	// Attachments carried with the request.
	Attachments []Attachment
}

// Validate checks the transport-level constraints before submission.
func (r *MmsRequest) Validate(maxAttachments int) error {
	if r.DataType != RequestDataXML {
		return fmt.Errorf("unsupported request data type %q", r.DataType)
	}
	if n := len(r.Signature); n < MinSignatureLen || n > MaxSignatureLen {
		return fmt.Errorf("request signature length %d outside [%d, %d]", n, MinSignatureLen, MaxSignatureLen)
	}
	if r.Payload == "" {
		return fmt.Errorf("request payload is empty")
	}
	if len(r.Attachments) > maxAttachments {
		return fmt.Errorf("%d attachments exceeds the limit of %d", len(r.Attachments), maxAttachments)
	}
	return nil
}

// MmsResponse is the outer transport structure returned by the MMS.
type MmsResponse struct {
	// Success reports whether the server accepted the request.
	Success bool
	// Warnings reports whether the response carries warnings.
	Warnings bool
	// Binary marks binary (pre-generated report) response data.
	Binary bool
	// Compressed marks a compressed payload. Unsupported by this client.
	Compressed bool
	// DataType is the format of the response payload.
	DataType ResponseDataType
	// Filename assigned to pre-generated report responses.
	Filename string
	// Payload is the decoded response document bytes.
	Payload []byte
	// Attachments carried with the response.
	Attachments []Attachment
}
