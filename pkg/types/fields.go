package types

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// Wire formats for dates and timestamps. The MMS expresses all times as
// Japan wall-clock without a zone designator.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05"
)

// TokyoZone is the fixed offset the MMS operates in.
var TokyoZone = time.FixedZone("JST", 9*60*60)

// MaxPowerKw is the upper bound on every power quantity field.
const MaxPowerKw = 10000000

var (
	participantPattern   = regexp.MustCompile(`^[A-Z]([0-9]{2}[1-9]|[0-9][1-9][0-9]|[1-9][0-9]{2})$`)
	userPattern          = regexp.MustCompile(`^[A-Z0-9]{1,12}$`)
	operatorPattern      = regexp.MustCompile(`^[A-Z0-9]{4}$`)
	transactionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{8,10}$`)
	offerIDPattern       = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,30}$`)
	resourceNamePattern  = regexp.MustCompile(`^[A-Z0-9_\-]{1,10}$`)
	systemCodePattern    = regexp.MustCompile(`^[A-Z0-9]{5}$`)
)

// FieldError reports a value that violates a schema constraint.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: value %q %s", e.Field, e.Value, e.Reason)
}

// AttributeError reports an attribute that could not be decoded.
type AttributeError struct {
	Element   string
	Attribute string
	Value     string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("element %s: attribute %s has malformed value %q", e.Element, e.Attribute, e.Value)
}

// ValidateParticipant checks an MMS participant code: one uppercase letter
// followed by three digits that are not all zero.
func ValidateParticipant(v string) error {
	if !participantPattern.MatchString(v) {
		return &FieldError{Field: "participant", Value: v, Reason: "must be a letter followed by three digits (not 000)"}
	}
	return nil
}

// ValidateUser checks an MMS user name: 1-12 uppercase alphanumerics.
func ValidateUser(v string) error {
	if !userPattern.MatchString(v) {
		return &FieldError{Field: "user", Value: v, Reason: "must be 1-12 uppercase alphanumeric characters"}
	}
	return nil
}

// ValidateOperatorCode checks a TSO/MO operator code: 4 uppercase alphanumerics.
func ValidateOperatorCode(v string) error {
	if !operatorPattern.MatchString(v) {
		return &FieldError{Field: "operator", Value: v, Reason: "must be 4 uppercase alphanumeric characters"}
	}
	return nil
}

// ValidateTransactionID checks a server transaction ID: 8-10 alphanumerics.
func ValidateTransactionID(v string) error {
	if !transactionIDPattern.MatchString(v) {
		return &FieldError{Field: "transaction id", Value: v, Reason: "must be 8-10 alphanumeric characters"}
	}
	return nil
}

// ValidateOfferID checks an offer ID: 1-30 characters of [a-zA-Z0-9_-].
func ValidateOfferID(v string) error {
	if !offerIDPattern.MatchString(v) {
		return &FieldError{Field: "offer id", Value: v, Reason: "must be 1-30 characters of letters, digits, underscore or hyphen"}
	}
	return nil
}

// ValidateResourceName checks a resource code: 1-10 characters of [A-Z0-9_-].
func ValidateResourceName(v string) error {
	if !resourceNamePattern.MatchString(v) {
		return &FieldError{Field: "resource", Value: v, Reason: "must be 1-10 characters of uppercase letters, digits, underscore or hyphen"}
	}
	return nil
}

// ValidateSystemCode checks an MMS grid system code: exactly 5 uppercase alphanumerics.
func ValidateSystemCode(v string) error {
	if !systemCodePattern.MatchString(v) {
		return &FieldError{Field: "system code", Value: v, Reason: "must be 5 uppercase alphanumeric characters"}
	}
	return nil
}

// validatePower checks a strictly positive power quantity in kW.
func validatePower(field string, v int) error {
	if v <= 0 || v > MaxPowerKw {
		return &FieldError{Field: field, Value: strconv.Itoa(v), Reason: fmt.Sprintf("must be in (0, %d]", MaxPowerKw)}
	}
	return nil
}

func validateOptPower(field string, v *int) error {
	if v == nil {
		return nil
	}
	return validatePower(field, *v)
}

// validatePrice checks a non-negative price with the given upper limit.
func validatePrice(field string, v float64, limit float64) error {
	if v < 0 || v > limit {
		return &FieldError{Field: field, Value: formatFloat(v), Reason: fmt.Sprintf("must be in [0, %s]", formatFloat(limit))}
	}
	return nil
}

func validateRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &FieldError{Field: field, Value: strconv.Itoa(v), Reason: fmt.Sprintf("must be in [%d, %d]", lo, hi)}
	}
	return nil
}

func validateLength(field, v string, lo, hi int) error {
	if len(v) < lo || len(v) > hi {
		return &FieldError{Field: field, Value: v, Reason: fmt.Sprintf("length must be in [%d, %d]", lo, hi)}
	}
	return nil
}

// Attribute encode helpers. Optional fields produce no attribute at all, so
// omitted values roundtrip as nil rather than empty strings.

func setAttr(el *etree.Element, name, v string) {
	el.CreateAttr(name, v)
}

func setOptAttr(el *etree.Element, name, v string) {
	if v != "" {
		el.CreateAttr(name, v)
	}
}

func setIntAttr(el *etree.Element, name string, v int) {
	el.CreateAttr(name, strconv.Itoa(v))
}

func setOptIntAttr(el *etree.Element, name string, v *int) {
	if v != nil {
		el.CreateAttr(name, strconv.Itoa(*v))
	}
}

func setFloatAttr(el *etree.Element, name string, v float64) {
	el.CreateAttr(name, formatFloat(v))
}

func setBoolAttr(el *etree.Element, name string, v bool) {
	el.CreateAttr(name, strconv.FormatBool(v))
}

func setOptBoolAttr(el *etree.Element, name string, v *bool) {
	if v != nil {
		el.CreateAttr(name, strconv.FormatBool(*v))
	}
}

func setDateAttr(el *etree.Element, name string, v time.Time) {
	el.CreateAttr(name, v.Format(DateFormat))
}

func setOptDateAttr(el *etree.Element, name string, v *time.Time) {
	if v != nil {
		el.CreateAttr(name, v.Format(DateFormat))
	}
}

func setTimeAttr(el *etree.Element, name string, v time.Time) {
	el.CreateAttr(name, v.Format(DateTimeFormat))
}

func setOptTimeAttr(el *etree.Element, name string, v *time.Time) {
	if v != nil {
		el.CreateAttr(name, v.Format(DateTimeFormat))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Attribute decode helpers. Required fields fail when the attribute is
// absent; optional helpers return zero values or nil pointers instead.

func attrString(el *etree.Element, name string) string {
	return el.SelectAttrValue(name, "")
}

func attrInt(el *etree.Element, name string) (int, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return 0, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return v, nil
}

func attrBool(el *etree.Element, name string) (bool, error) {
	raw := el.SelectAttrValue(name, "")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return v, nil
}

func attrOptBool(el *etree.Element, name string) (*bool, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return &v, nil
}

func attrFloat(el *etree.Element, name string) (float64, error) {
	raw := el.SelectAttrValue(name, "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return v, nil
}

func attrTime(el *etree.Element, name string) (time.Time, error) {
	raw := el.SelectAttrValue(name, "")
	v, err := time.ParseInLocation(DateTimeFormat, raw, TokyoZone)
	if err != nil {
		return time.Time{}, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return v, nil
}

func attrOptTime(el *etree.Element, name string) (*time.Time, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return nil, nil
	}
	v, err := time.ParseInLocation(DateTimeFormat, raw, TokyoZone)
	if err != nil {
		return nil, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return &v, nil
}

func attrDate(el *etree.Element, name string) (time.Time, error) {
	raw := el.SelectAttrValue(name, "")
	v, err := time.ParseInLocation(DateFormat, raw, TokyoZone)
	if err != nil {
		return time.Time{}, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return v, nil
}

func attrOptDate(el *etree.Element, name string) (*time.Time, error) {
	raw := el.SelectAttrValue(name, "")
	if raw == "" {
		return nil, nil
	}
	v, err := time.ParseInLocation(DateFormat, raw, TokyoZone)
	if err != nil {
		return nil, &AttributeError{Element: el.Tag, Attribute: name, Value: raw}
	}
	return &v, nil
}
