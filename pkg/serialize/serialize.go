package serialize

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// Schema names the XSD a document is validated against on the server side.
type Schema string

const (
	SchemaMarket         Schema = "mi-market.xsd"
	SchemaReport         Schema = "mi-report.xsd"
	SchemaReportResponse Schema = "mi-outbnd-reports.xsd"
	SchemaRegistration   Schema = "mpr.xsd"
	SchemaOMI            Schema = "omi.xsd"
)

// xmlHeader is the declaration the MMS expects on request documents.
const xmlHeader = "<?xml version='1.0' encoding='utf-8'?>\n"

// Serializer pairs a schema with its document root element.
type Serializer struct {
	Schema Schema
	Root   string
}

// NewSerializer returns a serializer for the given schema and root.
func NewSerializer(schema Schema, root string) *Serializer {
	return &Serializer{Schema: schema, Root: root}
}

// Serialize produces the request document for one envelope wrapping the
// given payloads. The payloads must be of the envelope's kind; a mismatch
// fails with KindMismatchError before any element is built.
func (s *Serializer) Serialize(env types.Envelope, payloads ...types.Payload) ([]byte, error) {
	for _, p := range payloads {
		if p.Kind() != env.Kind() {
			return nil, &KindMismatchError{
				Envelope:     env.ElementName(),
				EnvelopeKind: env.Kind(),
				Payload:      p.ElementName(),
				PayloadKind:  p.Kind(),
			}
		}
	}

	envEl, err := env.MarshalElement()
	if err != nil {
		return nil, fmt.Errorf("marshal envelope %s: %w", env.ElementName(), err)
	}
	for _, p := range payloads {
		el, err := p.MarshalElement()
		if err != nil {
			return nil, fmt.Errorf("marshal payload %s: %w", p.ElementName(), err)
		}
		envEl.AddChild(el)
	}

	doc := etree.NewDocument()
	root := doc.CreateElement(s.Root)
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema")
	root.CreateAttr("xsi:noNamespaceSchemaLocation", string(s.Schema))
	root.AddChild(envEl)

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize %s document: %w", s.Root, err)
	}
	return append([]byte(xmlHeader), body...), nil
}

// parse reads a response document and locates the envelope element,
// decoding the document-level state shared by single and multi responses.
func (s *Serializer) parse(data []byte, env types.Envelope, base *types.BaseResponse) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse response document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("response document has no root element")
	}
	if root.Tag != s.Root {
		return nil, &SchemaMismatchError{Expected: s.Root, Actual: root.Tag}
	}

	envEl := root.SelectElement(env.ElementName())
	if envEl == nil {
		return nil, &EnvelopeNotFoundError{Envelope: env.ElementName()}
	}
	if err := env.UnmarshalElement(envEl); err != nil {
		return nil, fmt.Errorf("unmarshal envelope %s: %w", env.ElementName(), err)
	}
	base.EnvelopeStatus.UnmarshalAttrs(envEl)

	if statsEl := root.SelectElement("ProcessingStatistics"); statsEl != nil {
		stats := &types.ProcessingStatistics{}
		if err := stats.UnmarshalElement(statsEl); err != nil {
			return nil, fmt.Errorf("unmarshal processing statistics: %w", err)
		}
		base.Statistics = stats
	}

	base.Messages = make(map[string]types.Messages)
	collectMessages(root, root.Tag, base.Messages)
	return envEl, nil
}

// Deserialize decodes a response document carrying at most one payload
// element. The envelope is filled in place; a missing payload element is an
// error.
func Deserialize[E types.Envelope, P types.Payload](s *Serializer, data []byte, env E, payload P) (*types.Response[E, P], error) {
	resp := &types.Response[E, P]{Envelope: env}
	envEl, err := s.parse(data, env, &resp.BaseResponse)
	if err != nil {
		return nil, err
	}

	el := envEl.SelectElement(payload.ElementName())
	if el == nil {
		return nil, &DataNotFoundError{Element: payload.ElementName()}
	}
	if err := payload.UnmarshalElement(el); err != nil {
		return nil, fmt.Errorf("unmarshal payload %s: %w", payload.ElementName(), err)
	}
	resp.Payload = &types.ResponseData[P]{Data: payload}
	resp.Payload.Status.UnmarshalAttrs(el)
	return resp, nil
}

// DeserializeMulti decodes a response document carrying any number of
// payload elements, in server order. An empty result is not an error.
func DeserializeMulti[E types.Envelope, P types.Payload](s *Serializer, data []byte, env E, newPayload func() P) (*types.MultiResponse[E, P], error) {
	resp := &types.MultiResponse[E, P]{Envelope: env}
	envEl, err := s.parse(data, env, &resp.BaseResponse)
	if err != nil {
		return nil, err
	}

	name := newPayload().ElementName()
	for _, el := range envEl.SelectElements(name) {
		payload := newPayload()
		if err := payload.UnmarshalElement(el); err != nil {
			return nil, fmt.Errorf("unmarshal payload %s: %w", name, err)
		}
		item := types.ResponseData[P]{Data: payload}
		item.Status.UnmarshalAttrs(el)
		resp.Payloads = append(resp.Payloads, item)
	}
	return resp, nil
}

// collectMessages walks the document and records the Messages blocks the
// server attached, keyed by element path. Repeated sibling elements are
// disambiguated with a zero-based index, as in
// "MarketData.MarketSubmit.OfferData[0]".
func collectMessages(el *etree.Element, path string, out map[string]types.Messages) {
	if msgEl := el.SelectElement("Messages"); msgEl != nil {
		out[path] = types.MessagesFromElement(msgEl)
	}

	counts := make(map[string]int)
	for _, child := range el.ChildElements() {
		if child.Tag != "Messages" {
			counts[child.Tag]++
		}
	}
	seen := make(map[string]int)
	for _, child := range el.ChildElements() {
		if child.Tag == "Messages" {
			continue
		}
		childPath := path + "." + child.Tag
		if counts[child.Tag] > 1 {
			childPath = fmt.Sprintf("%s[%d]", childPath, seen[child.Tag])
			seen[child.Tag]++
		}
		collectMessages(child, childPath, out)
	}
}
