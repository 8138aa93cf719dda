// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

/*
Package types defines the wire-level data structures exchanged with the MMS.

Two layers live here. The outer transport layer (MmsRequest, MmsResponse,
Attachment) is what crosses the SOAP boundary: base64 payloads, signatures,
and protocol flags. The inner layer is the business document itself:
operation envelopes (MarketSubmit, MarketQuery, RegistrationSubmit,
ReportBase, ...) each wrapping one or more payloads (OfferData,
ReserveRequirement, ResourceData, ...), plus the response scaffolding the
server annotates documents with (ProcessingStatistics, ResponseCommon,
Messages).

Every envelope and payload implements the Payload interface: it knows its
element name, its operation kind, and how to marshal/unmarshal itself to an
etree element. Field constraints from the MMS schemas (lengths, patterns,
numeric ranges) are enforced during marshalling so invalid documents are
rejected before they are ever signed.
*/
package types
