package types

// AreaCode identifies the grid region a resource or requirement belongs to.
type AreaCode string

const (
	AreaHokkaido AreaCode = "01"
	AreaTohoku   AreaCode = "02"
	AreaTokyo    AreaCode = "03"
	AreaChubu    AreaCode = "04"
	AreaHokuriku AreaCode = "05"
	AreaKansai   AreaCode = "06"
	AreaChugoku  AreaCode = "07"
	AreaShikoku  AreaCode = "08"
	AreaKyushu   AreaCode = "09"
	AreaOkinawa  AreaCode = "10"
)

// MarketType selects the balancing market a request targets.
type MarketType string

const (
	MarketTypeDayAhead  MarketType = "DAM"
	MarketTypeWeekAhead MarketType = "WAM"
)

// Direction is the reserve direction of an offer or requirement. The MMS
// removed support for the buy direction; only sell remains.
type Direction string

const (
	DirectionSell Direction = "1"
)

// QueryAction selects how much history a registration query returns.
type QueryAction string

const (
	// QueryActionNormal retrieves all records matching the conditions.
	QueryActionNormal QueryAction = "NORMAL"
	// QueryActionLatest retrieves only the most recent matching record.
	QueryActionLatest QueryAction = "LATEST"
)

// QueryType is the kind of data a registration query addresses.
type QueryType string

const (
	QueryTypeTrade QueryType = "TRADE"
)

// RejectCategory is the reason class for rejecting a surplus capacity request.
type RejectCategory string

const (
	RejectFuelRestriction      RejectCategory = "1"
	RejectRiverFlowRestriction RejectCategory = "2"
	RejectWorkRelated          RejectCategory = "3"
	RejectOther                RejectCategory = "9"
)

// OperationalRejectCategory is the reason class for rejecting an operational
// request such as voltage adjustment, black start, over-power, peak mode, or
// a system security pump request.
type OperationalRejectCategory string

const (
	OperationalRejectEquipmentFailure OperationalRejectCategory = "1"
	OperationalRejectNotSupported     OperationalRejectCategory = "2"
	OperationalRejectOther            OperationalRejectCategory = "9"
)
