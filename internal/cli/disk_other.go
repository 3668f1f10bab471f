// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !linux && !darwin && !freebsd && !windows

package cli

import "errors"

func diskFree(string) (uint64, error) {
	return 0, errors.ErrUnsupported
}
