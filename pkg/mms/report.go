package mms

import (
	"context"
	"time"

	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// CreateReport asks the server to generate a report. The BSP name on the
// request is set from the client configuration. The returned response
// carries the transaction ID the server assigned, taken from the
// processing statistics; the ID addresses the report when downloading it.
// Available to all client types.
func (c *Client) CreateReport(ctx context.Context, req *types.NewReportRequest) (*types.NewReportResponse, error) {
	ep := endpoint{
		name:    "ReportCreateRequest",
		svc:     reportService,
		reqType: types.RequestTypeReport,
	}
	req.BSPName = c.cfg.Participant
	resp, err := requestOne(ctx, c, ep, c.reportEnvelope(), req,
		&types.ReportBase{}, &types.NewReportResponse{})
	if err != nil {
		return nil, err
	}
	created := resp.Data()
	if resp.Statistics != nil {
		created.TransactionID = resp.Statistics.TransactionID
	}
	return created, nil
}

// ListReports retrieves the generated reports matching the listing
// criteria. Available to all client types.
func (c *Client) ListReports(ctx context.Context, req *types.ListReportRequest) ([]types.ReportItem, error) {
	ep := endpoint{
		name:      "ReportListRequest",
		svc:       reportService,
		reqType:   types.RequestTypeReport,
		retriable: true,
	}
	resp, err := requestOne(ctx, c, ep, c.reportEnvelope(), req,
		&types.ReportBase{}, &types.ListReportResponse{})
	if err != nil {
		return nil, err
	}
	return resp.Data().Reports, nil
}

// DownloadReport retrieves the line items of a generated report by its
// transaction ID. The item type and the client types the report admits
// depend on the report; reports should be downloaded one at a time.
func DownloadReport[P types.Payload](
	ctx context.Context, c *Client, transactionID string,
	newItem func() P, allowed ...transport.ClientType,
) ([]P, error) {
	ep := endpoint{
		name:           "ReportDownloadRequestTrnID",
		svc:            reportService,
		reqType:        types.RequestTypeReport,
		allowed:        allowed,
		retriable:      true,
		respSerializer: reportDownloadSerializer,
	}
	req := &types.ReportDownloadRequest{TransactionID: transactionID}
	resp, err := requestMany(ctx, c, ep, c.reportEnvelope(), []types.Payload{req},
		&types.OutboundData{}, newItem)
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// ListBSPResources generates and downloads the BSP resource list report
// for the given period. Only BSPs may request it.
func (c *Client) ListBSPResources(ctx context.Context, start, end time.Time) ([]*types.BSPResourceListItem, error) {
	created, err := c.CreateReport(ctx, &types.NewReportRequest{
		ReportMetadata: types.ReportMetadata{
			Type:        types.ReportTypeRegistration,
			SubType:     types.ReportSubTypeResources,
			Periodicity: types.PeriodicityOnDemand,
			Name:        types.ReportBSPResourceList,
			Date:        time.Now().In(types.TokyoZone),
		},
		Parameters: []types.Parameter{
			{Name: types.ParamStartTime, Value: start.Format(types.DateFormat) + "T00:00:00"},
			{Name: types.ParamEndTime, Value: end.Format(types.DateFormat) + "T00:00:00"},
		},
	})
	if err != nil {
		return nil, err
	}
	return DownloadReport(ctx, c, created.TransactionID,
		func() *types.BSPResourceListItem { return &types.BSPResourceListItem{} },
		transport.ClientBSP)
}

func (c *Client) reportEnvelope() *types.ReportBase {
	return &types.ReportBase{
		Application: types.ApplicationMarketReport,
		Participant: c.cfg.Participant,
	}
}
