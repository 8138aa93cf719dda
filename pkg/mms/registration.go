package mms

import (
	"context"
	"time"

	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// PutResource registers a resource with the MMS. Only BSPs may register
// resources. The participant on the resource is set from the client
// configuration; the registration envelope itself carries no identity.
func (c *Client) PutResource(ctx context.Context, resource *types.ResourceData) (*types.ResourceData, error) {
	ep := endpoint{
		name:    "RegistrationSubmit_Resource",
		svc:     registrationService,
		reqType: types.RequestTypeRegistration,
		allowed: []transport.ClientType{transport.ClientBSP},
	}
	resource.Participant = c.cfg.Participant
	resp, err := requestOne(ctx, c, ep, &types.RegistrationSubmit{}, resource,
		&types.RegistrationSubmit{}, &types.ResourceData{})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// QueryResources retrieves the registered resources matching the query.
// The action selects all matching revisions or only the latest; a nil date
// means today. Available to BSPs and TSOs.
func (c *Client) QueryResources(
	ctx context.Context, query *types.ResourceQuery, action types.QueryAction, date *time.Time,
) ([]*types.ResourceData, error) {
	ep := endpoint{
		name:      "RegistrationQuery_Resource",
		svc:       registrationService,
		reqType:   types.RequestTypeRegistration,
		allowed:   []transport.ClientType{transport.ClientBSP, transport.ClientTSO},
		retriable: true,
	}
	query.Participant = c.cfg.Participant
	env := &types.RegistrationQuery{Action: action, Date: date}
	resp, err := requestMany(ctx, c, ep, env, []types.Payload{query},
		&types.RegistrationSubmit{}, func() *types.ResourceData { return &types.ResourceData{} })
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}
