package mms

import (
	"context"
	"time"

	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// QueryReserveRequirements retrieves the reserve requirements matching the
// query for the given number of days from the transaction date. A zero
// date means today. Available to all client types.
func (c *Client) QueryReserveRequirements(
	ctx context.Context, query *types.ReserveRequirementQuery, days int, date time.Time,
) ([]*types.ReserveRequirement, error) {
	ep := endpoint{
		name:      "MarketQuery_ReserveRequirementQuery",
		svc:       marketService,
		reqType:   types.RequestTypeInfo,
		retriable: true,
	}
	env := &types.MarketQuery{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
		Days:        days,
	}
	resp, err := requestMany(ctx, c, ep, env, []types.Payload{query},
		&types.MarketSubmit{}, func() *types.ReserveRequirement { return &types.ReserveRequirement{} })
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// PutOffer submits one offer to the given market. Only BSPs may submit
// offers. The returned offer is the server's registered version.
func (c *Client) PutOffer(
	ctx context.Context, offer *types.OfferData, market types.MarketType, days int, date time.Time,
) (*types.OfferData, error) {
	resp, err := requestOne(ctx, c, c.offerSubmitEndpoint(),
		c.marketSubmitEnvelope(market, days, date), offer,
		&types.MarketSubmit{}, &types.OfferData{})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// PutOffers submits several offers to the given market in one request.
// Only BSPs may submit offers.
func (c *Client) PutOffers(
	ctx context.Context, offers []*types.OfferData, market types.MarketType, days int, date time.Time,
) ([]*types.OfferData, error) {
	payloads := make([]types.Payload, len(offers))
	for i, offer := range offers {
		payloads[i] = offer
	}
	resp, err := requestMany(ctx, c, c.offerSubmitEndpoint(),
		c.marketSubmitEnvelope(market, days, date), payloads,
		&types.MarketSubmit{}, func() *types.OfferData { return &types.OfferData{} })
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// QueryOffers retrieves the offers matching the query for the given number
// of days from the transaction date. Available to all client types.
func (c *Client) QueryOffers(
	ctx context.Context, query *types.OfferQuery, days int, date time.Time,
) ([]*types.OfferData, error) {
	ep := endpoint{
		name:      "MarketQuery_OfferQuery",
		svc:       marketService,
		reqType:   types.RequestTypeMarket,
		retriable: true,
	}
	env := &types.MarketQuery{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
		Days:        days,
	}
	resp, err := requestMany(ctx, c, ep, env, []types.Payload{query},
		&types.MarketSubmit{}, func() *types.OfferData { return &types.OfferData{} })
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// CancelOffer withdraws an offer from the given market. Only BSPs may
// cancel offers.
func (c *Client) CancelOffer(
	ctx context.Context, cancel *types.OfferCancel, market types.MarketType, days int, date time.Time,
) (*types.OfferCancel, error) {
	ep := endpoint{
		name:    "MarketCancel_OfferCancel",
		svc:     marketService,
		reqType: types.RequestTypeMarket,
		allowed: []transport.ClientType{transport.ClientBSP},
	}
	env := &types.MarketCancel{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
		MarketType:  market,
		Days:        days,
	}
	resp, err := requestOne(ctx, c, ep, env, cancel, &types.MarketCancel{}, &types.OfferCancel{})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// QueryAwards retrieves the award results matching the query for the given
// number of days from the transaction date. Available to all client types.
func (c *Client) QueryAwards(
	ctx context.Context, query *types.AwardQuery, days int, date time.Time,
) (*types.AwardResponse, error) {
	ep := endpoint{
		name:      "MarketQuery_AwardResultsQuery",
		svc:       marketService,
		reqType:   types.RequestTypeMarket,
		retriable: true,
	}
	env := &types.MarketQuery{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
		Days:        days,
	}
	resp, err := requestOne(ctx, c, ep, env, query, &types.MarketSubmit{}, &types.AwardResponse{})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

func (c *Client) offerSubmitEndpoint() endpoint {
	return endpoint{
		name:    "MarketSubmit_OfferData",
		svc:     marketService,
		reqType: types.RequestTypeMarket,
		allowed: []transport.ClientType{transport.ClientBSP},
	}
}

func (c *Client) marketSubmitEnvelope(market types.MarketType, days int, date time.Time) *types.MarketSubmit {
	return &types.MarketSubmit{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
		MarketType:  market,
		Days:        days,
	}
}
