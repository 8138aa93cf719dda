package transport

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

const (
	soapNamespace = "http://www.w3.org/2003/05/soap-envelope"

	// Service namespaces from the MI and OMI WSDL bindings.
	namespaceMI  = "urn:abb.com:project/mms"
	namespaceOMI = "urn:ws.web.omi.co.jp"
)

func serviceNamespace(iface Interface) string {
	if iface == InterfaceOMI {
		return namespaceOMI
	}
	return namespaceMI
}

// encodeEnvelope wraps an MmsRequest in a SOAP 1.2 envelope invoking the
// submitAttachment operation.
func encodeEnvelope(iface Interface, req *types.MmsRequest) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", soapNamespace)
	env.CreateAttr("xmlns:mms", serviceNamespace(iface))
	env.CreateElement("soapenv:Header")
	body := env.CreateElement("soapenv:Body")

	op := body.CreateElement("mms:submitAttachment")
	op.CreateElement("mms:requestType").SetText(string(req.Subsystem))
	op.CreateElement("mms:adminRole").SetText(strconv.FormatBool(req.AsAdmin))
	op.CreateElement("mms:requestDataCompressed").SetText(strconv.FormatBool(req.Compressed))
	op.CreateElement("mms:requestDataType").SetText(string(req.DataType))
	op.CreateElement("mms:sendRequestDataOnSuccess").SetText(strconv.FormatBool(req.RespondWithRequest))
	op.CreateElement("mms:sendResponseDataCompressed").SetText(strconv.FormatBool(req.ResponseCompressed))
	op.CreateElement("mms:requestSignature").SetText(req.Signature)
	op.CreateElement("mms:requestData").SetText(req.Payload)
	for _, att := range req.Attachments {
		el := op.CreateElement("mms:attachmentData")
		el.CreateElement("mms:binaryData").SetText(att.Data)
		el.CreateElement("mms:signature").SetText(att.Signature)
		el.CreateElement("mms:name").SetText(att.Name)
	}

	return doc.WriteToBytes()
}

// SOAPFault is the fault the server returns in place of a response body.
type SOAPFault struct {
	Code   string
	Reason string
}

func (f *SOAPFault) Error() string {
	return fmt.Sprintf("SOAP fault %s: %s", f.Code, f.Reason)
}

// findByLocalTag returns the first descendant with the given local tag,
// ignoring namespace prefixes.
func findByLocalTag(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findByLocalTag(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child.Text()
		}
	}
	return ""
}

func childBool(el *etree.Element, tag string, fallback bool) bool {
	raw := childText(el, tag)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// decodeEnvelope parses a submitAttachment SOAP response into an
// MmsResponse. A SOAP fault in the body is returned as a *SOAPFault error.
func decodeEnvelope(data []byte) (*types.MmsResponse, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse SOAP response: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("SOAP response has no root element")
	}

	if fault := findByLocalTag(root, "Fault"); fault != nil {
		f := &SOAPFault{}
		if code := findByLocalTag(fault, "Value"); code != nil {
			f.Code = code.Text()
		}
		if reason := findByLocalTag(fault, "Text"); reason != nil {
			f.Reason = reason.Text()
		}
		return nil, f
	}

	result := findByLocalTag(root, "submitAttachmentResponse")
	if result == nil {
		// Some server versions nest the fields under a return element.
		result = findByLocalTag(root, "return")
	}
	if result == nil {
		return nil, fmt.Errorf("submitAttachmentResponse not found in SOAP response")
	}
	if ret := findByLocalTag(result, "return"); ret != nil {
		result = ret
	}

	payload, err := base64.StdEncoding.DecodeString(childText(result, "responseData"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}

	resp := &types.MmsResponse{
		Success:    childBool(result, "success", false),
		Warnings:   childBool(result, "warnings", false),
		Binary:     childBool(result, "responseBinary", false),
		Compressed: childBool(result, "responseCompressed", false),
		DataType:   types.ResponseDataType(childText(result, "responseDataType")),
		Filename:   childText(result, "responseFilename"),
		Payload:    payload,
	}
	for _, el := range result.ChildElements() {
		if el.Tag != "attachmentData" {
			continue
		}
		resp.Attachments = append(resp.Attachments, types.Attachment{
			Name:      childText(el, "name"),
			Data:      childText(el, "binaryData"),
			Signature: childText(el, "signature"),
		})
	}
	return resp, nil
}
