// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mmsclient implements a client for the Japan Balancing Market System
(JBMS) Market Management System, the "MMS".

# Overview

The MMS exposes a SOAP web service ("submitAttachment") through which
balancing service providers, market operators, and transmission system
operators submit and query market data: offers, reserve requirements,
awards, resource registrations, reports, and surplus capacity. Every
request carries an XML business document, base64-encoded and signed with
the participant's RSA key, inside an outer transport structure. Responses
return the same document annotated with per-element validation results.

# Package Structure

The library is organized into the following packages:

	github.com/ElectroRoute-Japan/mms-client/pkg/mms       - Main MMS client API
	github.com/ElectroRoute-Japan/mms-client/pkg/types     - Wire DTOs: envelopes, payloads, transport structures
	github.com/ElectroRoute-Japan/mms-client/pkg/serialize - XML serialization bound to the MMS schemas
	github.com/ElectroRoute-Japan/mms-client/pkg/security  - Certificate loading, canonicalization, and request signing
	github.com/ElectroRoute-Japan/mms-client/pkg/transport - SOAP transport with mutual TLS and endpoint failover
	github.com/ElectroRoute-Japan/mms-client/pkg/audit     - Wire-level audit interceptors

# Quick Start

To submit an offer:

	import (
	    "github.com/ElectroRoute-Japan/mms-client/pkg/mms"
	    "github.com/ElectroRoute-Japan/mms-client/pkg/security"
	    "github.com/ElectroRoute-Japan/mms-client/pkg/transport"
	    "github.com/ElectroRoute-Japan/mms-client/pkg/types"
	)

	cert, _ := security.NewCertificateFromFile("participant.p12", "passphrase")
	client, _ := mms.NewClient(mms.Config{
	    Participant: "F100",
	    User:        "TRADER1",
	    Client:      transport.ClientBSP,
	    Certificate: cert,
	})

	offer := &types.OfferData{
	    Resource:  "FAKE_RESO",
	    Start:     start,
	    End:       end,
	    Direction: types.DirectionSell,
	    Stack: []types.OfferStack{
	        {Number: 1, MinimumQuantityKw: 100, UnitPrice: 100},
	    },
	}
	registered, err := client.PutOffer(ctx, offer, types.MarketTypeDayAhead, 1, time.Time{})

All operations validate the server's response semantics: processing
statistics, per-element validation status, and attached messages. Failures
surface as typed errors (mms.AudienceError, mms.ValidationError,
mms.ProcessingValidationError and friends) inspectable with errors.As.

# Security

Requests are signed with RSA PKCS#1 v1.5 over SHA-256. The signature is
computed over the exclusive canonical form (with comments) of the business
document, and those same canonical bytes are what is transmitted, so the
signature always verifies against the payload as sent. The participant
certificate also authenticates the TLS channel.

# License

BSD-2-Clause License
*/
package mmsclient
