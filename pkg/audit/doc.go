// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

// Package audit provides hooks for recording the raw SOAP traffic exchanged
// with the MMS. Interceptors registered on a client observe every request
// and response body, which market participants typically archive for
// compliance.
package audit
