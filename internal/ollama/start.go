// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"fmt"
	"os"
	"os/exec"
)

// FindExecutable locates the ollama binary: PATH first, then the places
// the official installers put it.
func FindExecutable() (string, error) {
	for _, name := range executableNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	candidates := installCandidates()
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH or %d install locations", executableNames[0], len(candidates))
}

// startOllamaProcess runs `ollama serve` detached from this process and
// returns the binary it ran.
func (c *Client) startOllamaProcess() (string, error) {
	path, err := FindExecutable()
	if err != nil {
		return "", &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not installed", Cause: err}
	}

	cmd := exec.Command(path, "serve")
	// OLLAMA_* settings (models dir, GPU selection) must reach the server.
	cmd.Env = os.Environ()
	cmd.SysProcAttr = serverProcAttr()
	if err := cmd.Start(); err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to start " + path, Cause: err}
	}
	// The server outlives us.
	_ = cmd.Process.Release()
	return path, nil
}
