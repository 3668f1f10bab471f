// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the jiyuu TUI.

All colors use Lip Gloss AdaptiveColor so they follow the terminal's light
or dark background. NewTheme probes the terminal once through termenv and
builds every style the chat view needs.

# Layout

GetLayoutMode buckets the terminal width into narrow, medium and wide;
BubbleWidth derives the message bubble width from it.

# Accessibility

StatusIndicators pair every state color with an ASCII marker so state is
readable without color.
*/
package styles
