// Copyright (c) 2024 ElectroRoute Japan
// SPDX-License-Identifier: BSD-2-Clause

/*
Package security implements the certificate handling and payload signing the
MMS requires.

Every request document is canonicalized with exclusive XML canonicalization
(with comments), signed with RSA-SHA256, and submitted together with the
base64 signature. The same client certificate authenticates the TLS
connection.

	cert, err := security.NewCertificateFromFile("trader.p12", "passphrase")
	signer, err := security.NewSigner(cert)
	canonical, sig, err := signer.Sign(document)
*/
package security
