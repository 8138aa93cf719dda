// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the SOAP-over-HTTPS layer for the MMS web
services.

A Client binds one service interface (MI or OMI) for one participant type
and submits MmsRequest structures through the submitAttachment operation,
authenticating with the client certificate over mutual TLS. Failed
submissions are retried with exponential backoff; server errors switch the
client to the backup endpoint.
*/
package transport
