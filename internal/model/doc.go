// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns.
//
// # Key Types
//
//   - Turn: one message, attributed to the user or the assistant
//   - Log: the ordered conversation, append-only except for Clear and the
//     in-place growth of the last assistant turn while it streams
//   - Role: turn role enumeration (user, assistant)
//
// # Usage
//
//	log := model.NewLog()
//	log.AppendUser("hi")
//	reply := log.AppendAssistant()
//	log.AppendDelta(reply.ID, "Hel")
//	log.AppendDelta(reply.ID, "lo")
//	turns := log.Turns() // [user "hi", assistant "Hello"]
//
// A Log is not safe for concurrent use; the session controller serializes
// every access.
package model
