package mms

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElectroRoute-Japan/mms-client/pkg/security"
	"github.com/ElectroRoute-Japan/mms-client/pkg/serialize"
	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

func testCertificate(t *testing.T) *security.Certificate {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "F100.FAKEUSER"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	cert, err := security.NewCertificateFromPEM(certPEM, keyPEM)
	require.NoError(t, err)
	return cert
}

// fakeTransport scripts one transport exchange and records how it was made.
type fakeTransport struct {
	iface   transport.Interface
	req     *types.MmsRequest
	resp    *types.MmsResponse
	err     error
	retried bool
}

func (f *fakeTransport) Submit(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error) {
	f.req = req
	f.retried = true
	return f.resp, f.err
}

func (f *fakeTransport) SubmitOnce(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error) {
	f.req = req
	return f.resp, f.err
}

func newTestClient(t *testing.T, clientType transport.ClientType) (*Client, *fakeTransport) {
	t.Helper()
	client, err := NewClient(Config{
		Participant: "F100",
		User:        "FAKEUSER",
		Client:      clientType,
		Certificate: testCertificate(t),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	fake := &fakeTransport{}
	client.newTransport = func(iface transport.Interface) (Submitter, error) {
		fake.iface = iface
		return fake, nil
	}
	return client, fake
}

func xmlResponse(root, schema, inner string) *types.MmsResponse {
	doc := `<?xml version='1.0' encoding='utf-8'?>
<` + root + ` xmlns:xsi="http://www.w3.org/2001/XMLSchema" xsi:noNamespaceSchemaLocation="` + schema + `">` +
		inner + `</` + root + `>`
	return &types.MmsResponse{Success: true, DataType: types.ResponseDataXML, Payload: []byte(doc)}
}

func testOffer() *types.OfferData {
	return &types.OfferData{
		Resource:  "FAKE_RESO",
		Start:     time.Date(2019, 8, 30, 3, 24, 15, 0, types.TokyoZone),
		End:       time.Date(2019, 8, 30, 11, 24, 15, 0, types.TokyoZone),
		Direction: types.DirectionSell,
		Stack:     []types.OfferStack{{Number: 1, MinimumQuantityKw: 100, UnitPrice: 100}},
	}
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	cert := testCertificate(t)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad participant", Config{Participant: "x", User: "FAKEUSER", Client: transport.ClientBSP, Certificate: cert}},
		{"bad user", Config{Participant: "F100", User: "invalid user", Client: transport.ClientBSP, Certificate: cert}},
		{"bad client type", Config{Participant: "F100", User: "FAKEUSER", Client: "derp", Certificate: cert}},
		{"no certificate", Config{Participant: "F100", User: "FAKEUSER", Client: transport.ClientBSP}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestPutOffer(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <ProcessingStatistics Received="1" Valid="1" Invalid="0" Successful="1" TransactionId="derpderp"/>
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="true" Validation="PASSED">
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100" OfferId="FAKE_ID"/>
    </OfferData>
  </MarketSubmit>`)

	date := time.Date(2019, 8, 29, 0, 0, 0, 0, types.TokyoZone)
	offer, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, date)
	require.NoError(t, err)
	assert.Equal(t, "FAKE_RESO", offer.Resource)
	require.Len(t, offer.Stack, 1)
	assert.Equal(t, "FAKE_ID", offer.Stack[0].ID)

	// Submissions must not be retried.
	assert.False(t, fake.retried)
	assert.Equal(t, transport.InterfaceMI, fake.iface)

	req := fake.req
	require.NotNil(t, req)
	assert.Equal(t, types.RequestTypeMarket, req.Subsystem)
	assert.Equal(t, types.RequestDataXML, req.DataType)
	assert.True(t, req.RespondWithRequest)

	// The signature must cover the exact canonical bytes that were sent.
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `ParticipantName="F100"`)
	signer, err := security.NewSigner(client.cfg.Certificate)
	require.NoError(t, err)
	assert.NoError(t, signer.Verify(payload, req.Signature))
}

func TestPutOfferRejectsNonBSP(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientTSO)

	_, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, time.Time{})
	var audErr *AudienceError
	require.ErrorAs(t, err, &audErr)
	assert.Equal(t, "MarketSubmit_OfferData", audErr.Operation)
	assert.Equal(t, transport.ClientTSO, audErr.Client)
	assert.Nil(t, fake.req, "rejected requests must never reach the transport")
}

func TestQueryOffers(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1" Success="true" Validation="PASSED">
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
    <OfferData ResourceName="OTHER_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="200" OfferUnitPrice="50"/>
    </OfferData>
  </MarketSubmit>`)

	offers, err := client.QueryOffers(context.Background(),
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead}, 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "FAKE_RESO", offers[0].Resource)
	assert.Equal(t, "OTHER_RESO", offers[1].Resource)

	// Queries are idempotent and ride the retrying path.
	assert.True(t, fake.retried)
}

func TestQueryReserveRequirements(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientTSO)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1" Success="true" Validation="PASSED">
    <ReserveRequirement Area="04" Success="true" Validation="PASSED">
      <Requirement StartTime="2019-08-30T03:00:00" EndTime="2019-08-30T06:00:00" Direction="1" PrimaryReserveQuantityInKw="5000"/>
    </ReserveRequirement>
  </MarketSubmit>`)

	reqs, err := client.QueryReserveRequirements(context.Background(),
		&types.ReserveRequirementQuery{MarketType: types.MarketTypeDayAhead, Area: types.AreaChubu}, 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, types.AreaChubu, reqs[0].Area)
	assert.Equal(t, types.RequestTypeInfo, fake.req.Subsystem)
}

func TestServerErrorResponse(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = &types.MmsResponse{
		Success:  false,
		DataType: types.ResponseDataTXT,
		Payload:  []byte("The request was rejected by the gateway.\n"),
	}

	_, err := client.QueryOffers(context.Background(),
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead}, 1, time.Time{})
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "The request was rejected by the gateway.", srvErr.Message)
}

func TestUnsupportedResponseFormat(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)

	fake.resp = &types.MmsResponse{Success: true, DataType: types.ResponseDataCSV, Payload: []byte("a,b")}
	_, err := client.QueryOffers(context.Background(),
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead}, 1, time.Time{})
	var fmtErr *UnsupportedResponseFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, types.ResponseDataCSV, fmtErr.DataType)

	fake.resp = &types.MmsResponse{Success: true, DataType: types.ResponseDataXML, Compressed: true}
	_, err = client.QueryOffers(context.Background(),
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead}, 1, time.Time{})
	require.ErrorAs(t, err, &fmtErr)
	assert.True(t, fmtErr.Compressed)
}

func TestValidationFailure(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="false" Validation="FAILED">
    <Messages><Error Code="E0001">Invalid participant</Error></Messages>
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="false" Validation="FAILED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
  </MarketSubmit>`)

	_, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, time.Time{})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	msgs, ok := valErr.Messages["MarketData.MarketSubmit"]
	require.True(t, ok)
	require.Len(t, msgs.Errors, 1)
	assert.Equal(t, "E0001", msgs.Errors[0].Code)
	assert.Contains(t, valErr.Error(), "E0001")

	// The envelope and the offer both failed.
	require.Len(t, valErr.Failed, 2)
	assert.Equal(t, types.ValidationFailed, valErr.Failed[0].Validation)
	assert.Contains(t, valErr.Error(), "validation=FAILED")
}

func TestFailedValidationReportsStatus(t *testing.T) {
	// A failed validation with no attached messages still names the
	// offending status in the error.
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="true" Validation="FAILED">
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
  </MarketSubmit>`)

	_, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, time.Time{})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Failed, 1)
	assert.True(t, valErr.Failed[0].Success)
	assert.Equal(t, types.ValidationFailed, valErr.Failed[0].Validation)
	assert.Contains(t, valErr.Error(), "success=true, validation=FAILED")
}

func TestWarningValidationIsRejected(t *testing.T) {
	// WARNING and PASSED_PARTIAL are not acceptable outcomes even when the
	// success flag is set.
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="true" Validation="WARNING">
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
  </MarketSubmit>`)

	_, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, time.Time{})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Failed, 1)
	assert.Equal(t, types.ValidationWarning, valErr.Failed[0].Validation)
	assert.Contains(t, valErr.Error(), "validation=WARNING")
}

func TestQueryOffersRejectsItemError(t *testing.T) {
	// An error message on one item of a multi-payload response fails the
	// whole operation even when every success and validation flag passes.
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" NumOfDays="1" Success="true" Validation="PASSED">
    <OfferData ResourceName="RESO_A" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="10"/>
    </OfferData>
    <OfferData ResourceName="RESO_B" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <Messages><Error Code="E-2">bad stack</Error></Messages>
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="20"/>
    </OfferData>
    <OfferData ResourceName="RESO_C" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="30"/>
    </OfferData>
  </MarketSubmit>`)

	offers, err := client.QueryOffers(context.Background(),
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead}, 1, time.Time{})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Nil(t, offers)

	// No element flag failed; the messages alone reject the response.
	assert.Empty(t, valErr.Failed)
	msgs, ok := valErr.Messages["MarketData.MarketSubmit.OfferData[1]"]
	require.True(t, ok)
	require.Len(t, msgs.Errors, 1)
	assert.Equal(t, "E-2", msgs.Errors[0].Code)
	assert.Contains(t, valErr.Error(), "E-2")
}

func TestProcessingInvalidItems(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "mi-market.xsd", `
  <ProcessingStatistics Received="2" Valid="1" Invalid="1" Successful="1" Unsuccessful="1"/>
  <MarketSubmit Date="2019-08-29" ParticipantName="F100" UserName="FAKEUSER" MarketType="DAM" NumOfDays="1" Success="true" Validation="PASSED">
    <OfferData ResourceName="FAKE_RESO" StartTime="2019-08-30T03:24:15" EndTime="2019-08-30T11:24:15" Direction="1" Success="true" Validation="PASSED">
      <OfferStack StackNumber="1" MinimumQuantityInKw="100" OfferUnitPrice="100"/>
    </OfferData>
  </MarketSubmit>`)

	_, err := client.PutOffer(context.Background(), testOffer(), types.MarketTypeDayAhead, 1, time.Time{})
	var procErr *ProcessingValidationError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, 1, procErr.Invalid)
	assert.Equal(t, 2, procErr.Received)
}

func TestPutResource(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("RegistrationData", "mpr.xsd", `
  <RegistrationSubmit Success="true" Validation="PASSED">
    <Resource ParticipantName="F100" ResourceName="FAKE_RESO" ContractType="1" ResourceType="THERMAL" Area="04" StartDate="2024-04-01" SystemCode="FSYS0" ResourceShortName="FAKE" ResourceLongName="FAKE RESOURCE" RecordStatus="SUBMITTED" TransactionId="derpderp" Success="true" Validation="PASSED"/>
  </RegistrationSubmit>`)

	resource, err := client.PutResource(context.Background(), &types.ResourceData{
		Name:           "FAKE_RESO",
		ContractType:   types.ContractMarket,
		ResourceType:   types.ResourceThermal,
		Area:           types.AreaChubu,
		Start:          time.Date(2024, 4, 1, 0, 0, 0, 0, types.TokyoZone),
		SystemCode:     "FSYS0",
		ShortName:      "FAKE",
		FullName:       "FAKE RESOURCE",
		BalancingGroup: "FBG00",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusSubmitted, resource.Status)
	assert.Equal(t, "derpderp", resource.TransactionID)
	assert.Equal(t, types.RequestTypeRegistration, fake.req.Subsystem)

	// The participant rides on the payload for registrations.
	payload, err := base64.StdEncoding.DecodeString(fake.req.Payload)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `<Resource ParticipantName="F100"`)
}

func TestQueryResourcesRejectsMO(t *testing.T) {
	client, _ := newTestClient(t, transport.ClientMO)
	_, err := client.QueryResources(context.Background(), &types.ResourceQuery{}, types.QueryActionNormal, nil)
	var audErr *AudienceError
	require.ErrorAs(t, err, &audErr)
}

func TestCreateReportAttachesTransactionID(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketReport", "mi-report.xsd", `
  <ProcessingStatistics TransactionId="derpderp"/>
  <MarketReport ApplicationType="MARKET_REPORT" ParticipantName="F100" Success="true" Validation="PASSED">
    <ReportCreateRequest ReportType="REGISTRATION" ReportSubType="RESOURCE" Periodicity="ON_DEMAND" ReportName="BSP_ResourceList" Date="2024-04-12" BSPName="F100" Success="true" Validation="PASSED">
      <Param Name="START_TIME" Value="2024-04-10T00:00:00"/>
      <Param Name="END_TIME" Value="2024-04-12T00:00:00"/>
    </ReportCreateRequest>
  </MarketReport>`)

	created, err := client.CreateReport(context.Background(), &types.NewReportRequest{
		ReportMetadata: types.ReportMetadata{
			Type:        types.ReportTypeRegistration,
			SubType:     types.ReportSubTypeResources,
			Periodicity: types.PeriodicityOnDemand,
			Name:        types.ReportBSPResourceList,
			Date:        time.Date(2024, 4, 12, 0, 0, 0, 0, types.TokyoZone),
		},
		Parameters: []types.Parameter{
			{Name: types.ParamStartTime, Value: "2024-04-10T00:00:00"},
			{Name: types.ParamEndTime, Value: "2024-04-12T00:00:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "derpderp", created.TransactionID)
	assert.Equal(t, types.RequestTypeReport, fake.req.Subsystem)
}

func TestListReports(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketReport", "mi-report.xsd", `
  <MarketReport ApplicationType="MARKET_REPORT" ParticipantName="F100" Success="true" Validation="PASSED">
    <ReportListRequest ReportType="REGISTRATION" ReportSubType="RESOURCE" Periodicity="ON_DEMAND" ReportName="BSP_ResourceList" Date="2024-04-12" Success="true" Validation="PASSED">
      <ReportListResponse>
        <ReportItem ReportType="REGISTRATION" ReportSubType="RESOURCE" Periodicity="ON_DEMAND" ReportName="BSP_ResourceList" Date="2024-04-12" AccessClass="BSP" FileName="resources.csv" FileType="CSV" TransactionId="derpderp" FileSize="2048" BinaryFile="false" ExpiryDate="2024-04-14" Description="BSP resource list"/>
      </ReportListResponse>
    </ReportListRequest>
  </MarketReport>`)

	reports, err := client.ListReports(context.Background(), &types.ListReportRequest{
		ReportMetadata: types.ReportMetadata{
			Type:        types.ReportTypeRegistration,
			SubType:     types.ReportSubTypeResources,
			Periodicity: types.PeriodicityOnDemand,
			Name:        types.ReportBSPResourceList,
			Date:        time.Date(2024, 4, 12, 0, 0, 0, 0, types.TokyoZone),
		},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "resources.csv", reports[0].Filename)
	assert.Equal(t, "derpderp", reports[0].TransactionID)
	assert.Equal(t, int64(2048), reports[0].FileSizeBytes)
}

func TestDownloadReport(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("OutboundData", "mi-outbnd-reports.xsd", `
  <OutboundData DatasetName="BSP_ResourceList" DatasetType="ON_DEMAND" DateType="TRADE" DateTimeIndicator="JST" Success="true" Validation="PASSED">
    <BSP_ResourceList ROW="1" ParticipantName="F100" CompanyShortName="FAKECO" StartDate="2024-04-01" ResourceShortName="FAKE" ResourceName="FAKE_RESO" SystemCode="FSYS0" Area="04" ContractType="1" Success="true" Validation="PASSED"/>
  </OutboundData>`)

	items, err := DownloadReport(context.Background(), client, "derpderp",
		func() *types.BSPResourceListItem { return &types.BSPResourceListItem{} },
		transport.ClientBSP)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FAKE_RESO", items[0].Name)
	require.NotNil(t, items[0].Row)
	assert.Equal(t, 1, *items[0].Row)
	assert.Equal(t, fake.iface, transport.InterfaceMI)
}

func TestPutSurplusCapacity(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)
	fake.resp = xmlResponse("MarketData", "omi.xsd", `
  <MarketSubmit Date="2024-04-12" ParticipantName="F100" UserName="FAKEUSER" Success="true" Validation="PASSED">
    <RemainingReserveData ResourceName="FAKE_RESO" DrPatternNumber="1" StartTime="2024-04-12T12:00:00" EndTime="2024-04-12T15:00:00" RemainingReserveUp="1000" Area="04" ParticipantName="F100" SystemCode="FSYS0" Success="true" Validation="PASSED"/>
  </MarketSubmit>`)

	upward := 1000
	record, err := client.PutSurplusCapacity(context.Background(), &types.SurplusCapacitySubmit{
		Resource:         "FAKE_RESO",
		PatternNumber:    1,
		Start:            time.Date(2024, 4, 12, 12, 0, 0, 0, types.TokyoZone),
		End:              time.Date(2024, 4, 12, 15, 0, 0, 0, types.TokyoZone),
		UpwardCapacityKw: &upward,
	}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, types.AreaChubu, record.Area)
	assert.Equal(t, "F100", record.Participant)

	// Surplus capacity rides the OMI interface and subsystem.
	assert.Equal(t, transport.InterfaceOMI, fake.iface)
	assert.Equal(t, types.RequestTypeOMI, fake.req.Subsystem)
}

func TestQuerySurplusCapacity(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientTSO)
	fake.resp = xmlResponse("MarketData", "omi.xsd", `
  <MarketSubmit Date="2024-04-12" ParticipantName="F100" UserName="FAKEUSER" Success="true" Validation="PASSED">
    <RemainingReserveData ResourceName="FAKE_RESO" DrPatternNumber="1" StartTime="2024-04-12T12:00:00" EndTime="2024-04-12T15:00:00" Area="04" Success="true" Validation="PASSED"/>
    <RemainingReserveData ResourceName="FAKE_RESO" DrPatternNumber="2" StartTime="2024-04-12T15:00:00" EndTime="2024-04-12T18:00:00" Area="04" Success="true" Validation="PASSED"/>
  </MarketSubmit>`)

	records, err := client.QuerySurplusCapacity(context.Background(), &types.SurplusCapacityQuery{
		Start: time.Date(2024, 4, 12, 12, 0, 0, 0, types.TokyoZone),
		End:   time.Date(2024, 4, 12, 18, 0, 0, 0, types.TokyoZone),
	}, time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[1].PatternNumber)
	assert.True(t, fake.retried)
}

func TestTransportIsCachedPerInterface(t *testing.T) {
	client, _ := newTestClient(t, transport.ClientBSP)
	built := 0
	client.newTransport = func(iface transport.Interface) (Submitter, error) {
		built++
		return &fakeTransport{}, nil
	}

	first, err := client.transportFor(transport.InterfaceMI)
	require.NoError(t, err)
	second, err := client.transportFor(transport.InterfaceMI)
	require.NoError(t, err)
	assert.Same(t, first.(*fakeTransport), second.(*fakeTransport))

	_, err = client.transportFor(transport.InterfaceOMI)
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

func TestKindMismatchRejected(t *testing.T) {
	client, fake := newTestClient(t, transport.ClientBSP)

	// An offer query payload cannot ride a submit envelope.
	env := &types.MarketSubmit{
		Date:        time.Date(2019, 8, 29, 0, 0, 0, 0, types.TokyoZone),
		Participant: "F100",
		User:        "FAKEUSER",
	}
	_, err := client.submit(context.Background(), client.offerSubmitEndpoint(), env,
		&types.OfferQuery{MarketType: types.MarketTypeDayAhead})
	var mismatch *serialize.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, types.KindQuery, mismatch.PayloadKind)
	assert.Equal(t, types.KindSubmit, mismatch.EnvelopeKind)
	assert.Nil(t, fake.req)
}
