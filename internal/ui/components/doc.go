// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual pieces of the jiyuu chat view.
//
// Components are plain render functions and small value types; they hold
// no references to the session controller. The chat package feeds them
// snapshot data and lays out their output.
//
// # Key Components
//
//   - CodeBlock, SplitFences, LastCodeBlock: fenced code handling
//   - Markdown: glamour prose rendering, cached per width
//   - RenderTurn: one conversation turn as a bubble
//   - LoadPanel: model load progress with a progress bar
//   - Welcome, InfoPanel: overlays
//   - StatusBar: the bottom line
package components
