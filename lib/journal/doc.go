// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal records timer events to a file as a CBOR sequence
// and reads them back.
//
// Each record is one [timer.Event] encoded with lib/codec. The file
// extension picks the framing: ".zst" wraps the sequence in a zstd
// stream, ".lz4" in an LZ4 frame, anything else is written raw. Raw
// journals can be inspected with any CBOR diagnostic tool.
//
// A Writer plugs into a board or a single timer through its Listener:
//
//	writer, err := journal.Create(path)
//	b := board.New(config, board.WithListener(writer.Listener()))
//	defer writer.Close()
package journal
