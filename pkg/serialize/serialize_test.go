package serialize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

func intptr(v int) *int { return &v }

func testOffer() *types.OfferData {
	return &types.OfferData{
		Resource:  "FAKE_RESC",
		Start:     time.Date(2024, 3, 15, 12, 0, 0, 0, types.TokyoZone),
		End:       time.Date(2024, 3, 15, 21, 0, 0, 0, types.TokyoZone),
		Direction: types.DirectionSell,
		Stack: []types.OfferStack{{
			Number:            1,
			MinimumQuantityKw: 100,
			UnitPrice:         100,
		}},
	}
}

func TestSerializeOfferSubmit(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	env := &types.MarketSubmit{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, types.TokyoZone),
		Participant: "F100",
		User:        "FAKEUSER",
		MarketType:  types.MarketTypeDayAhead,
		Days:        1,
	}
	data, err := ser.Serialize(env, testOffer())
	require.NoError(t, err)
	assert.Equal(t,
		"<?xml version='1.0' encoding='utf-8'?>\n"+
			`<MarketData xmlns:xsi="http://www.w3.org/2001/XMLSchema" xsi:noNamespaceSchemaLocation="mi-market.xsd">`+
			`<MarketSubmit Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1">`+
			`<OfferData ResourceName="FAKE_RESC" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" Direction="1">`+
			`<OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>`+
			`</OfferData></MarketSubmit></MarketData>`,
		string(data))
}

func TestSerializeKindMismatch(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	env := &types.MarketSubmit{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, types.TokyoZone),
		Participant: "F100",
		User:        "FAKEUSER",
		MarketType:  types.MarketTypeDayAhead,
		Days:        1,
	}
	_, err := ser.Serialize(env, &types.OfferQuery{MarketType: types.MarketTypeDayAhead})
	var mismatch *KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, types.KindSubmit, mismatch.EnvelopeKind)
	assert.Equal(t, types.KindQuery, mismatch.PayloadKind)
	assert.Equal(t, "OfferQuery", mismatch.Payload)
}

func TestSerializeInvalidPayload(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	env := &types.MarketSubmit{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, types.TokyoZone),
		Participant: "F100",
		User:        "FAKEUSER",
	}
	_, err := ser.Serialize(env, &types.OfferData{})
	assert.Error(t, err)
}

const offerResponse = `<?xml version='1.0' encoding='utf-8'?>
<MarketData xmlns:xsi="http://www.w3.org/2001/XMLSchema" xsi:noNamespaceSchemaLocation="mi-market.xsd">
  <ProcessingStatistics Received="1" Valid="1" Invalid="0" Successful="1" Unsuccessful="0" ProcessingTimeMs="187" TransactionId="derpderp" TimeStamp="Tue Mar 15 11:43:37 JST 2024" XmlTimeStamp="2024-03-15T11:43:37"/>
  <Messages>
    <Information Code="ROOT-OK"/>
  </Messages>
  <MarketSubmit Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="true" Validation="PASSED">
    <Messages>
      <Warning Code="W-ENV"/>
    </Messages>
    <OfferData ResourceName="FAKE_RESC" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" Direction="1" Success="true" Validation="PASSED">
      <Messages>
        <Error Code="E-DATA">something</Error>
      </Messages>
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
  </MarketSubmit>
</MarketData>`

func TestDeserializeOfferSubmit(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	resp, err := Deserialize(ser, []byte(offerResponse), &types.MarketSubmit{}, &types.OfferData{})
	require.NoError(t, err)

	require.NotNil(t, resp.Statistics)
	assert.Equal(t, "derpderp", resp.Statistics.TransactionID)
	assert.Equal(t, 0, resp.Statistics.InvalidCount())

	assert.True(t, resp.EnvelopeStatus.OK())
	assert.Equal(t, "F100", resp.Envelope.Participant)

	require.NotNil(t, resp.Payload)
	assert.True(t, resp.Payload.Status.OK())
	assert.Equal(t, "FAKE_RESC", resp.Data().Resource)
	require.Len(t, resp.Data().Stack, 1)
	assert.Equal(t, 100.0, resp.Data().Stack[0].UnitPrice)

	assert.Equal(t, "ROOT-OK", resp.Messages["MarketData"].Information[0].Code)
	assert.Equal(t, "W-ENV", resp.Messages["MarketData.MarketSubmit"].Warnings[0].Code)
	assert.Equal(t, "E-DATA", resp.Messages["MarketData.MarketSubmit.OfferData"].Errors[0].Code)
}

const multiOfferResponse = `<?xml version='1.0' encoding='utf-8'?>
<MarketData xmlns:xsi="http://www.w3.org/2001/XMLSchema" xsi:noNamespaceSchemaLocation="mi-market.xsd">
  <ProcessingStatistics Received="2" Valid="2" Invalid="0" Successful="2" Unsuccessful="0"/>
  <MarketSubmit Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1" Success="true" Validation="PASSED">
    <OfferData ResourceName="FAKE_RES1" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" Direction="1" Success="true" Validation="PASSED">
      <Messages><Information Code="I-0"/></Messages>
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="10"/>
    </OfferData>
    <OfferData ResourceName="FAKE_RES2" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" Direction="1" Success="false" Validation="FAILED">
      <Messages><Error Code="E-1"/></Messages>
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="20"/>
    </OfferData>
  </MarketSubmit>
</MarketData>`

func TestDeserializeMultiOffer(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	resp, err := DeserializeMulti(ser, []byte(multiOfferResponse), &types.MarketSubmit{},
		func() *types.OfferData { return &types.OfferData{} })
	require.NoError(t, err)

	require.Len(t, resp.Payloads, 2)
	assert.True(t, resp.Payloads[0].Status.OK())
	assert.False(t, resp.Payloads[1].Status.OK())
	assert.Equal(t, "FAKE_RES1", resp.Data()[0].Resource)
	assert.Equal(t, "FAKE_RES2", resp.Data()[1].Resource)

	// Repeated siblings are indexed in the messages map.
	assert.Equal(t, "I-0", resp.Messages["MarketData.MarketSubmit.OfferData[0]"].Information[0].Code)
	assert.Equal(t, "E-1", resp.Messages["MarketData.MarketSubmit.OfferData[1]"].Errors[0].Code)
}

func TestDeserializeErrors(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")

	_, err := Deserialize(ser, []byte("<RegistrationData/>"), &types.MarketSubmit{}, &types.OfferData{})
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "MarketData", mismatch.Expected)

	_, err = Deserialize(ser, []byte("<MarketData/>"), &types.MarketSubmit{}, &types.OfferData{})
	var noEnv *EnvelopeNotFoundError
	require.ErrorAs(t, err, &noEnv)

	_, err = Deserialize(ser,
		[]byte(`<MarketData><MarketSubmit Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1"/></MarketData>`),
		&types.MarketSubmit{}, &types.OfferData{})
	var noData *DataNotFoundError
	require.ErrorAs(t, err, &noData)

	_, err = Deserialize(ser, []byte("not xml at all <<<"), &types.MarketSubmit{}, &types.OfferData{})
	assert.Error(t, err)
}

func TestDeserializeMultiEmpty(t *testing.T) {
	ser := NewSerializer(SchemaMarket, "MarketData")
	resp, err := DeserializeMulti(ser,
		[]byte(`<MarketData><MarketQuery Date="2024-03-15" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1"/></MarketData>`),
		&types.MarketQuery{}, func() *types.OfferData { return &types.OfferData{} })
	require.NoError(t, err)
	assert.Empty(t, resp.Payloads)
}
