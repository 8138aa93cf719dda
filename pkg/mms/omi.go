package mms

import (
	"context"
	"time"

	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// PutSurplusCapacity reports the remaining reserve of a resource through
// the OMI interface. Only BSPs may submit surplus capacity. The returned
// record is the server's registered version with the identity fields it
// adds.
func (c *Client) PutSurplusCapacity(
	ctx context.Context, submit *types.SurplusCapacitySubmit, date time.Time,
) (*types.SurplusCapacityData, error) {
	ep := endpoint{
		name:    "MarketSubmit_RemainingReserveData",
		svc:     omiService,
		reqType: types.RequestTypeOMI,
		allowed: []transport.ClientType{transport.ClientBSP},
	}
	env := &types.OMIMarketSubmit{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
	}
	resp, err := requestOne(ctx, c, ep, env, submit,
		&types.OMIMarketSubmit{}, &types.SurplusCapacityData{})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// QuerySurplusCapacity retrieves the surplus capacity records matching the
// query through the OMI interface. Available to all client types.
func (c *Client) QuerySurplusCapacity(
	ctx context.Context, query *types.SurplusCapacityQuery, date time.Time,
) ([]*types.SurplusCapacityData, error) {
	ep := endpoint{
		name:      "MarketQuery_RemainingReserveDataQuery",
		svc:       omiService,
		reqType:   types.RequestTypeOMI,
		retriable: true,
	}
	env := &types.OMIMarketQuery{
		Date:        effectiveDate(date),
		Participant: c.cfg.Participant,
		User:        c.cfg.User,
	}
	resp, err := requestMany(ctx, c, ep, env, []types.Payload{query},
		&types.OMIMarketSubmit{}, func() *types.SurplusCapacityData { return &types.SurplusCapacityData{} })
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}
