// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama runs the chat engine on a local Ollama server.
//
// Client speaks the Ollama HTTP API (health, tags, pull, generate, chat).
// Loader adapts it to engine.Loader: it makes sure the server is up,
// pulls the model when it is missing, and warms it into memory before
// handing out a session.
//
// # Key Types
//
//   - Client: HTTP client for the Ollama API
//   - StreamReader: NDJSON reader for /api/chat streams
//   - Loader: engine.Loader backed by a Client
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url})
//	loader := ollama.NewLoader(client, ollama.LoaderConfig{AutoPull: true}, logger)
//	sess, err := loader.Load(ctx, "llama3.2:1b", onProgress)
//
// Interrupting a session cancels its in-flight HTTP requests. The chat
// endpoint keeps no server-side history, so resetting a session only
// interrupts it.
package ollama
