// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.ReadyBanner.Render("Go!"))
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width %d", tt.width)
	}
}

func TestBubbleWidth(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 20)
	assert.Equal(t, 38, theme.BubbleWidth())

	theme.SetSize(80, 20)
	assert.Equal(t, 64, theme.BubbleWidth())

	theme.SetSize(120, 20)
	assert.Equal(t, 90, theme.BubbleWidth())

	theme.SetSize(5, 20)
	assert.Equal(t, 10, theme.BubbleWidth())
}

func TestSpinnerDuration(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, LineSpinner.Duration())
	assert.Equal(t, time.Second, SpinnerConfig{}.Duration())
}
