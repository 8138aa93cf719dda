package serialize

import (
	"fmt"

	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// KindMismatchError indicates a payload paired with an envelope of a
// different operation kind, such as a query payload under a submit
// envelope. The document is never built.
type KindMismatchError struct {
	Envelope     string
	EnvelopeKind types.EnvelopeKind
	Payload      string
	PayloadKind  types.EnvelopeKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s payload <%s> cannot ride a %s envelope <%s>",
		e.PayloadKind, e.Payload, e.EnvelopeKind, e.Envelope)
}

// SchemaMismatchError indicates a response document rooted at an element
// other than the one the serializer's schema prescribes.
type SchemaMismatchError struct {
	Expected string
	Actual   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("response rooted at <%s>, expected <%s>", e.Actual, e.Expected)
}

// EnvelopeNotFoundError indicates a response document with no envelope
// element under the root.
type EnvelopeNotFoundError struct {
	Envelope string
}

func (e *EnvelopeNotFoundError) Error() string {
	return fmt.Sprintf("envelope <%s> not found in response", e.Envelope)
}

// DataNotFoundError indicates an envelope with no payload element where one
// was required.
type DataNotFoundError struct {
	Element string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("payload <%s> not found in response envelope", e.Element)
}
