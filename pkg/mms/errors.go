package mms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// AudienceError indicates an operation invoked by a client type the MMS
// does not permit to use it.
type AudienceError struct {
	Operation string
	Client    transport.ClientType
	Allowed   []transport.ClientType
}

func (e *AudienceError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, c := range e.Allowed {
		allowed[i] = string(c)
	}
	return fmt.Sprintf("%s is not available to %s clients (allowed: %s)",
		e.Operation, e.Client, strings.Join(allowed, ", "))
}

// ServerError indicates the server rejected the request outright and
// responded with a plain-text explanation instead of a document.
type ServerError struct {
	Operation string
	Message   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s rejected by the server: %s", e.Operation, e.Message)
}

// UnsupportedResponseFormatError indicates a response this client cannot
// decode: a non-XML data type or a compressed payload.
type UnsupportedResponseFormatError struct {
	Operation  string
	DataType   types.ResponseDataType
	Compressed bool
}

func (e *UnsupportedResponseFormatError) Error() string {
	if e.Compressed {
		return fmt.Sprintf("%s returned a compressed response, which is not supported", e.Operation)
	}
	return fmt.Sprintf("%s returned a %s response, expected XML", e.Operation, e.DataType)
}

// ProcessingValidationError indicates the server counted invalid items
// while processing the request.
type ProcessingValidationError struct {
	Operation string
	Invalid   int
	Received  int
}

func (e *ProcessingValidationError) Error() string {
	return fmt.Sprintf("%s: server reported %d of %d items invalid", e.Operation, e.Invalid, e.Received)
}

// ValidationError indicates the server marked the response, or one of its
// payloads, unsuccessful or failed validation. Failed holds the state of
// each rejected element, the envelope first when it was among them;
// Messages holds everything the server attached to the document, keyed by
// element path.
type ValidationError struct {
	Operation string
	Failed    []types.ResponseCommon
	Messages  map[string]types.Messages
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed server validation", e.Operation)
	if len(e.Failed) > 0 {
		st := e.Failed[0]
		fmt.Fprintf(&sb, " (success=%t, validation=%s", st.Success, st.Validation)
		if len(e.Failed) > 1 {
			fmt.Fprintf(&sb, "; %d elements rejected", len(e.Failed))
		}
		sb.WriteString(")")
	}

	paths := make([]string, 0, len(e.Messages))
	for path := range e.Messages {
		if len(e.Messages[path].Errors) > 0 {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		for _, msg := range e.Messages[path].Errors {
			fmt.Fprintf(&sb, "; %s: %s", path, msg)
		}
	}
	return sb.String()
}
