// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package ollama

import (
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

var executableNames = []string{"ollama.exe", "ollama"}

func installCandidates() []string {
	var paths []string
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		paths = append(paths, filepath.Join(dir, "Programs", "Ollama", "ollama.exe"))
	}
	if dir := os.Getenv("ProgramFiles"); dir != "" {
		paths = append(paths, filepath.Join(dir, "Ollama", "ollama.exe"))
	}
	return paths
}

// serverProcAttr detaches the server from our console.
func serverProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NO_WINDOW | windows.DETACHED_PROCESS,
		HideWindow:    true,
	}
}
