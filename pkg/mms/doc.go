// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mms is the client facade for the MMS market management system.

A Client is bound to one participant, user, and client type (BSP, MO, or
TSO) and exposes one method per MMS operation: offer submission and
queries, reserve requirement queries, award queries, resource
registration, report generation and download, and surplus capacity
reporting over the OMI interface.

Every operation follows the same pipeline: the typed request is wrapped
in its operation envelope, serialized to schema-rooted XML,
canonicalized, and signed with the participant certificate; the signed
document is submitted through the SOAP transport; and the response is
decoded and strictly verified before any data is returned. A response is
only considered successful when the server reported no invalid items,
marked the envelope and every returned payload successful, and attached
no error messages. Anything else surfaces as a typed error.

	cert, err := security.NewCertificateFromFile("participant.p12", "passphrase")
	if err != nil {
		// ...
	}
	client, err := mms.NewClient(mms.Config{
		Participant: "F100",
		User:        "FAKEUSER",
		Client:      transport.ClientBSP,
		Certificate: cert,
	})
	if err != nil {
		// ...
	}
	offer, err := client.PutOffer(ctx, offer, types.MarketTypeDayAhead, 1, time.Time{})
*/
package mms
