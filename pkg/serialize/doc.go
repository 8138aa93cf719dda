// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

// Package serialize converts business payloads to and from the schema-rooted
// XML documents the MMS exchanges. A Serializer pairs an XSD schema with its
// document root; Serialize wraps an envelope and its payloads under that
// root, and the Deserialize functions decode response documents back into
// typed responses, collecting the validation state and messages the server
// attaches along the way.
package serialize
