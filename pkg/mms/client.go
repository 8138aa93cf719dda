package mms

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ElectroRoute-Japan/mms-client/pkg/audit"
	"github.com/ElectroRoute-Japan/mms-client/pkg/security"
	"github.com/ElectroRoute-Japan/mms-client/pkg/serialize"
	"github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// Submitter is the transport surface the facade depends on. Submit retries
// transient failures; SubmitOnce does not and is used for write operations.
type Submitter interface {
	Submit(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error)
	SubmitOnce(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error)
}

// Config carries the identity and connection settings for one MMS client.
type Config struct {
	// Participant is the MMS participant code, e.g. "F100".
	Participant string
	// User is the MMS user the requests are made as.
	User string
	// Client is the participant type the endpoints and operation gates are
	// selected for.
	Client transport.ClientType
	// Certificate signs request payloads and authenticates the TLS
	// connection.
	Certificate *security.Certificate
	// Admin marks requests made in the market operator admin role.
	Admin bool
	// Test routes requests to the test endpoints.
	Test bool
	// Endpoints overrides the default endpoint table when non-nil.
	Endpoints transport.Endpoints
	// Interceptors observe the raw SOAP traffic.
	Interceptors []audit.Interceptor
	// Logger receives client diagnostics and server messages. Defaults to
	// slog.Default.
	Logger *slog.Logger
	// Timeout bounds each HTTP exchange.
	Timeout time.Duration
}

// Client issues operations against the MMS on behalf of one participant.
// It is safe for concurrent use.
type Client struct {
	cfg    Config
	signer *security.Signer
	logger *slog.Logger

	mu           sync.Mutex
	transports   map[transport.Interface]Submitter
	newTransport func(iface transport.Interface) (Submitter, error)
}

// NewClient builds an MMS client for the configured participant.
func NewClient(cfg Config) (*Client, error) {
	if err := types.ValidateParticipant(cfg.Participant); err != nil {
		return nil, err
	}
	if err := types.ValidateUser(cfg.User); err != nil {
		return nil, err
	}
	if !cfg.Client.Valid() {
		return nil, fmt.Errorf("invalid client type %q", cfg.Client)
	}
	if cfg.Certificate == nil {
		return nil, fmt.Errorf("a participant certificate is required")
	}

	signer, err := security.NewSigner(cfg.Certificate)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg:        cfg,
		signer:     signer,
		logger:     logger,
		transports: make(map[transport.Interface]Submitter),
	}
	c.newTransport = func(iface transport.Interface) (Submitter, error) {
		return transport.NewClient(transport.Config{
			Client:       cfg.Client,
			Iface:        iface,
			Certificate:  cfg.Certificate,
			Endpoints:    cfg.Endpoints,
			Test:         cfg.Test,
			Timeout:      cfg.Timeout,
			Interceptors: cfg.Interceptors,
			Logger:       logger,
		})
	}
	return c, nil
}

// transportFor returns the cached transport for the interface, building it
// on first use.
func (c *Client) transportFor(iface transport.Interface) (Submitter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub, ok := c.transports[iface]; ok {
		return sub, nil
	}
	sub, err := c.newTransport(iface)
	if err != nil {
		return nil, err
	}
	c.transports[iface] = sub
	return sub, nil
}

// service pairs an MMS interface with the serializer for its schema.
type service struct {
	iface      transport.Interface
	serializer *serialize.Serializer
}

var (
	marketService       = service{transport.InterfaceMI, serialize.NewSerializer(serialize.SchemaMarket, "MarketData")}
	registrationService = service{transport.InterfaceMI, serialize.NewSerializer(serialize.SchemaRegistration, "RegistrationData")}
	reportService       = service{transport.InterfaceMI, serialize.NewSerializer(serialize.SchemaReport, "MarketReport")}
	omiService          = service{transport.InterfaceOMI, serialize.NewSerializer(serialize.SchemaOMI, "MarketData")}

	// Report downloads come back under a different schema than the
	// requests that trigger them.
	reportDownloadSerializer = serialize.NewSerializer(serialize.SchemaReportResponse, "OutboundData")
)

// endpoint describes one MMS operation: its wire name, the service it
// belongs to, the subsystem it is routed to, and which client types may
// invoke it. An empty allowed set admits every client type.
type endpoint struct {
	name      string
	svc       service
	reqType   types.RequestType
	allowed   []transport.ClientType
	retriable bool
	// respSerializer overrides the service serializer when the response
	// document uses a different schema.
	respSerializer *serialize.Serializer
}

func (e endpoint) responseSerializer() *serialize.Serializer {
	if e.respSerializer != nil {
		return e.respSerializer
	}
	return e.svc.serializer
}

func (e endpoint) admits(client transport.ClientType) bool {
	if len(e.allowed) == 0 {
		return true
	}
	for _, c := range e.allowed {
		if c == client {
			return true
		}
	}
	return false
}

// submit runs the request pipeline up to the decoded document bytes:
// authorization gate, serialization, canonicalization and signing, the
// transport exchange, and the response format check.
func (c *Client) submit(ctx context.Context, ep endpoint, env types.Envelope, payloads ...types.Payload) ([]byte, error) {
	if !ep.admits(c.cfg.Client) {
		return nil, &AudienceError{Operation: ep.name, Client: c.cfg.Client, Allowed: ep.allowed}
	}
	doc, err := ep.svc.serializer.Serialize(env, payloads...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}
	canonical, signature, err := c.signer.Sign(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: sign request: %w", ep.name, err)
	}

	req := &types.MmsRequest{
		Subsystem:          ep.reqType,
		AsAdmin:            c.cfg.Admin,
		DataType:           types.RequestDataXML,
		RespondWithRequest: true,
		Signature:          signature,
		Payload:            base64.StdEncoding.EncodeToString(canonical),
	}
	maxAttachments := types.MaxAttachmentsMI
	if ep.svc.iface == transport.InterfaceOMI {
		maxAttachments = types.MaxAttachmentsOMI
	}
	if err := req.Validate(maxAttachments); err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}

	sub, err := c.transportFor(ep.svc.iface)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}

	correlation := uuid.NewString()
	c.logger.Debug("submitting mms request",
		"operation", ep.name, "correlation", correlation, "subsystem", req.Subsystem)

	var resp *types.MmsResponse
	if ep.retriable {
		resp, err = sub.Submit(ctx, req)
	} else {
		resp, err = sub.SubmitOnce(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}

	if resp.DataType == types.ResponseDataTXT {
		return nil, &ServerError{Operation: ep.name, Message: strings.TrimSpace(string(resp.Payload))}
	}
	if resp.Compressed || resp.DataType != types.ResponseDataXML {
		return nil, &UnsupportedResponseFormatError{
			Operation:  ep.name,
			DataType:   resp.DataType,
			Compressed: resp.Compressed,
		}
	}
	if !resp.Success || resp.Warnings {
		c.logger.Warn("mms response flagged by the server",
			"operation", ep.name, "correlation", correlation,
			"success", resp.Success, "warnings", resp.Warnings)
	}
	return resp.Payload, nil
}

// verify applies the strict acceptance rules to a decoded response: the
// server must report no invalid items, mark the envelope and every payload
// successful with an acceptable validation status, and attach no error
// messages. Informational and warning messages are logged, never raised.
func (c *Client) verify(op string, base *types.BaseResponse, statuses ...types.ResponseCommon) error {
	if invalid := base.Statistics.InvalidCount(); invalid > 0 {
		received := 0
		if base.Statistics != nil && base.Statistics.Received != nil {
			received = *base.Statistics.Received
		}
		return &ProcessingValidationError{Operation: op, Invalid: invalid, Received: received}
	}

	var failed []types.ResponseCommon
	if !base.EnvelopeStatus.OK() {
		failed = append(failed, base.EnvelopeStatus)
	}
	for _, st := range statuses {
		if !st.OK() {
			failed = append(failed, st)
		}
	}
	hasErrors := false
	for _, msgs := range base.Messages {
		if len(msgs.Errors) > 0 {
			hasErrors = true
		}
	}
	if len(failed) > 0 || hasErrors {
		return &ValidationError{Operation: op, Failed: failed, Messages: base.Messages}
	}

	for path, msgs := range base.Messages {
		for _, m := range msgs.Information {
			c.logger.Info("mms message", "operation", op, "path", path, "message", m.String())
		}
		for _, m := range msgs.Warnings {
			c.logger.Warn("mms message", "operation", op, "path", path, "message", m.String())
		}
	}
	return nil
}

// requestOne runs one operation expecting a single payload in the response.
func requestOne[E types.Envelope, P types.Payload](
	ctx context.Context, c *Client, ep endpoint,
	env types.Envelope, payload types.Payload,
	respEnv E, respPayload P,
) (*types.Response[E, P], error) {
	data, err := c.submit(ctx, ep, env, payload)
	if err != nil {
		return nil, err
	}
	resp, err := serialize.Deserialize(ep.responseSerializer(), data, respEnv, respPayload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}
	if err := c.verify(ep.name, &resp.BaseResponse, resp.Payload.Status); err != nil {
		return nil, err
	}
	return resp, nil
}

// requestMany runs one operation expecting any number of payloads in the
// response.
func requestMany[E types.Envelope, P types.Payload](
	ctx context.Context, c *Client, ep endpoint,
	env types.Envelope, payloads []types.Payload,
	respEnv E, newPayload func() P,
) (*types.MultiResponse[E, P], error) {
	data, err := c.submit(ctx, ep, env, payloads...)
	if err != nil {
		return nil, err
	}
	resp, err := serialize.DeserializeMulti(ep.responseSerializer(), data, respEnv, newPayload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.name, err)
	}
	statuses := make([]types.ResponseCommon, len(resp.Payloads))
	for i := range resp.Payloads {
		statuses[i] = resp.Payloads[i].Status
	}
	if err := c.verify(ep.name, &resp.BaseResponse, statuses...); err != nil {
		return nil, err
	}
	return resp, nil
}

// effectiveDate substitutes today's date in JST for a zero transaction date.
func effectiveDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now().In(types.TokyoZone)
	}
	return date
}
