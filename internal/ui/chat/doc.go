// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea front end of jiyuu.
//
// The Model owns no conversation state of its own. It subscribes to a
// session.Controller through a coalescing mailbox, redraws from the newest
// snapshot, and turns key presses into controller operations:
//
//	Enter        send (ignored while the input is blank)
//	Alt+Enter    newline
//	Esc, Ctrl+X  stop the reply being generated
//	Ctrl+L       clear the conversation
//	Ctrl+R       reload after a load failure
//	Ctrl+Y       copy the last code block
//	F1, ?        info panel
//	Ctrl+C       quit
package chat
