package types

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseElement(t *testing.T, raw string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(raw))
	return doc.Root()
}

func TestMessagesFromElement(t *testing.T) {
	el := parseElement(t, `<Messages>
		<Information Code="INFO1"/>
		<Warning>watch out</Warning>
		<Error Code="E001">broken</Error>
	</Messages>`)
	msgs := MessagesFromElement(el)
	require.Len(t, msgs.Information, 1)
	require.Len(t, msgs.Warnings, 1)
	require.Len(t, msgs.Errors, 1)
	assert.Equal(t, "INFO1", msgs.Information[0].String())
	assert.Equal(t, "watch out", msgs.Warnings[0].String())
	assert.Equal(t, "E001", msgs.Errors[0].Code)
	assert.False(t, msgs.Empty())
	assert.True(t, Messages{}.Empty())
}

func TestProcessingStatistics(t *testing.T) {
	el := parseElement(t, `<ProcessingStatistics Received="1" Valid="1" Invalid="0"`+
		` Successful="1" Unsuccessful="0" ProcessingTimeMs="187" TransactionId="derpderp"`+
		` TimeStamp="Tue Mar 15 11:43:37 JST 2024" XmlTimeStamp="2024-03-15T11:43:37"/>`)
	var stats ProcessingStatistics
	require.NoError(t, stats.UnmarshalElement(el))
	require.NotNil(t, stats.Received)
	assert.Equal(t, 1, *stats.Received)
	assert.Equal(t, 0, stats.InvalidCount())
	assert.Equal(t, "derpderp", stats.TransactionID)
	assert.Equal(t, 187, *stats.TimeMs)

	empty := parseElement(t, `<ProcessingStatistics/>`)
	var zero ProcessingStatistics
	require.NoError(t, zero.UnmarshalElement(empty))
	assert.Nil(t, zero.Received)
	assert.Equal(t, 0, zero.InvalidCount())
}

func TestResponseCommon(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"explicit pass", `<MarketSubmit Success="true" Validation="PASSED"/>`, true},
		{"not done", `<MarketSubmit Success="true" Validation="NOT_DONE"/>`, true},
		{"unannotated", `<MarketSubmit/>`, true},
		{"report style", `<MarketReport Success="true" ValidationStatus="PASSED"/>`, true},
		{"failed", `<MarketSubmit Success="true" Validation="FAILED"/>`, false},
		{"partial", `<MarketSubmit Success="true" Validation="PASSED_PARTIAL"/>`, false},
		{"warning", `<MarketSubmit Success="true" Validation="WARNING"/>`, false},
		{"unsuccessful", `<MarketSubmit Success="false" Validation="PASSED"/>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rc ResponseCommon
			rc.UnmarshalAttrs(parseElement(t, tt.raw))
			assert.Equal(t, tt.ok, rc.OK())
		})
	}
}

func TestMarketEnvelopes(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, TokyoZone)

	q := MarketQuery{Date: date, Participant: "F100", User: "FAKEUSER"}
	el, err := q.MarshalElement()
	require.NoError(t, err)
	assert.Equal(t, `<MarketQuery Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1"/>`,
		elementString(t, el))

	// Query horizon tops out at one week.
	q.Days = 8
	_, err = q.MarshalElement()
	assert.Error(t, err)

	s := MarketSubmit{Date: date, Participant: "F100", User: "FAKEUSER", MarketType: MarketTypeDayAhead, Days: 3}
	el, err = s.MarshalElement()
	require.NoError(t, err)
	assert.Equal(t,
		`<MarketSubmit Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="3"/>`,
		elementString(t, el))

	c := MarketCancel{Date: date, Participant: "F100", User: "FAKEUSER"}
	_, err = c.MarshalElement()
	assert.Error(t, err, "cancellations require a market type")
}

func TestMmsRequestValidate(t *testing.T) {
	req := MmsRequest{
		Subsystem: RequestTypeMarket,
		DataType:  RequestDataXML,
		Signature: "c2ln",
		Payload:   "ZGF0YQ==",
	}
	assert.NoError(t, req.Validate(MaxAttachmentsMI))

	bad := req
	bad.DataType = RequestDataJSON
	assert.Error(t, bad.Validate(MaxAttachmentsMI))

	bad = req
	bad.Signature = ""
	assert.Error(t, bad.Validate(MaxAttachmentsMI))

	bad = req
	bad.Attachments = make([]Attachment, MaxAttachmentsOMI+1)
	assert.Error(t, bad.Validate(MaxAttachmentsOMI))
}
