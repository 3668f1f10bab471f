// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives one chat conversation against a local model.
//
// A Controller owns the engine lifecycle and the conversation log. It loads
// the model in the background, streams completions into the log one chunk
// at a time, and recovers from load and generation failures without ever
// surfacing them as faults to the presentation layer.
//
// # Key Types
//
//   - Controller: the orchestration loop (Initialize, Submit, Cancel,
//     ClearConversation, Reload)
//   - State: the engine lifecycle enum
//   - Snapshot: an immutable view published to observers after every change
//   - Error: a typed load, generation, or cancellation-race failure
//
// # Usage
//
//	ctrl := session.New(loader, session.Config{ModelID: "llama3.2:1b"})
//	unsubscribe := ctrl.Subscribe(func(s session.Snapshot) { ... })
//	defer unsubscribe()
//
//	ctrl.Initialize(ctx)
//	ctrl.Submit("Hello")
//
// # State Machine
//
//	Unloaded -> Loading -> Ready <-> Generating
//	                   \-> Failed  (until Reload)
//
// No completion is requested unless the state is Ready.
package session
