// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// every binary record jomtimer writes.
//
// JSON is used for what people read: CLI --json output and the
// configuration file. CBOR is used for the event journal, where
// records are appended one after another as a CBOR sequence
// (RFC 8742). The encoder uses Core Deterministic Encoding, so the
// same event always produces the same bytes.
//
// Buffer-oriented:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Stream-oriented:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Types carry `json` struct tags only; fxamacker/cbor reads them when
// no `cbor` tag is present, so one tag controls naming in both formats.
package codec
