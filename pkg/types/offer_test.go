package types

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(v int) *int { return &v }

func elementString(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}

func TestOfferDataMarshal(t *testing.T) {
	offer := OfferData{
		Resource:  "FAKE_RESC",
		Start:     time.Date(2024, 3, 15, 12, 0, 0, 0, TokyoZone),
		End:       time.Date(2024, 3, 15, 21, 0, 0, 0, TokyoZone),
		Direction: DirectionSell,
		Stack: []OfferStack{{
			Number:            1,
			MinimumQuantityKw: 100,
			UnitPrice:         100,
		}},
	}
	el, err := offer.MarshalElement()
	require.NoError(t, err)

	assert.Equal(t,
		`<OfferData ResourceName="FAKE_RESC" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" Direction="1">`+
			`<OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>`+
			`</OfferData>`,
		elementString(t, el))
}

func TestOfferDataRoundtrip(t *testing.T) {
	offer := OfferData{
		Resource:         "FAKE_RESC",
		Start:            time.Date(2024, 3, 15, 12, 0, 0, 0, TokyoZone),
		End:              time.Date(2024, 3, 15, 21, 0, 0, 0, TokyoZone),
		Direction:        DirectionSell,
		PatternNumber:    intptr(12),
		BSPParticipant:   "F100",
		CompanyShortName: "偽会社",
		Operator:         "FAKE",
		Area:             AreaChubu,
		SystemCode:       "FSYS0",
		Stack: []OfferStack{{
			Number:            1,
			MinimumQuantityKw: 100,
			Tertiary2QtyKw:    intptr(200),
			UnitPrice:         99.5,
			ID:                "FAKE_ID",
		}},
	}
	el, err := offer.MarshalElement()
	require.NoError(t, err)

	var decoded OfferData
	require.NoError(t, decoded.UnmarshalElement(el))
	assert.Equal(t, offer, decoded)
}

func TestOfferDataInvalid(t *testing.T) {
	tests := []struct {
		name  string
		offer OfferData
	}{
		{"missing resource", OfferData{Direction: DirectionSell, Stack: []OfferStack{{Number: 1, MinimumQuantityKw: 1}}}},
		{"missing direction", OfferData{Resource: "FAKE_RESC", Stack: []OfferStack{{Number: 1, MinimumQuantityKw: 1}}}},
		{"no stacks", OfferData{Resource: "FAKE_RESC", Direction: DirectionSell}},
		{"bad stack number", OfferData{Resource: "FAKE_RESC", Direction: DirectionSell,
			Stack: []OfferStack{{Number: 21, MinimumQuantityKw: 1}}}},
		{"price too high", OfferData{Resource: "FAKE_RESC", Direction: DirectionSell,
			Stack: []OfferStack{{Number: 1, MinimumQuantityKw: 1, UnitPrice: 10001}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.offer.MarshalElement()
			assert.Error(t, err)
		})
	}
}

func TestOfferCancelMarshal(t *testing.T) {
	cancel := OfferCancel{
		Resource:   "FAKE_RESC",
		Start:      time.Date(2024, 3, 15, 12, 0, 0, 0, TokyoZone),
		End:        time.Date(2024, 3, 15, 21, 0, 0, 0, TokyoZone),
		MarketType: MarketTypeDayAhead,
	}
	el, err := cancel.MarshalElement()
	require.NoError(t, err)
	assert.Equal(t,
		`<OfferCancel ResourceName="FAKE_RESC" StartTime="2024-03-15T12:00:00" EndTime="2024-03-15T21:00:00" MarketType="DAM"/>`,
		elementString(t, el))
}

func TestOfferQueryDefaults(t *testing.T) {
	q := OfferQuery{MarketType: MarketTypeWeekAhead}
	el, err := q.MarshalElement()
	require.NoError(t, err)
	assert.Equal(t, `<OfferQuery MarketType="WAM"/>`, elementString(t, el))

	_, err = (&OfferQuery{}).MarshalElement()
	assert.Error(t, err)
}
