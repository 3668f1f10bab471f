// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/ollama"
	"github.com/jeranaias/jiyuu-tui/internal/util"
)

// doctorTimeout bounds each network check.
const doctorTimeout = 5 * time.Second

// minModelSpace is the free space below which pulling a model is likely
// to fail.
const minModelSpace = 4 << 30

// Replaced in tests.
var (
	findOllama    = ollama.FindExecutable
	freeDiskSpace = diskFree
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus is the outcome of a health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the styled marker for the status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render("[OK]")
	case CheckWarn:
		return WarningStyle.Render("[!!]")
	default:
		return ErrorStyle.Render("[FAIL]")
	}
}

// HealthCheck is a single check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string
}

// Render formats the check as one or two lines.
func (c *HealthCheck) Render() string {
	line := c.Status.Symbol() + " " + c.Message
	if c.Status != CheckPass && c.Fix != "" {
		line += "\n" + DimStyle.Render("     -> "+c.Fix)
	}
	return line
}

// =============================================================================
// DOCTOR
// =============================================================================

// Doctor checks everything jiyuu needs before it can load a model.
type Doctor struct {
	Config     *config.Config
	ConfigPath string
	Client     *ollama.Client
}

// Run performs all checks in order.
func (d *Doctor) Run(ctx context.Context) []*HealthCheck {
	checks := []*HealthCheck{
		d.checkConfig(),
		d.checkOllamaInstalled(),
	}
	running := d.checkOllamaRunning(ctx)
	checks = append(checks, running)
	if running.Status == CheckPass {
		checks = append(checks, d.checkModel(ctx))
	}
	return append(checks, d.checkDataDir(), d.checkDiskSpace())
}

func (d *Doctor) checkConfig() *HealthCheck {
	c := &HealthCheck{Name: "config"}
	if _, err := os.Stat(d.ConfigPath); os.IsNotExist(err) {
		c.Message = "Config: using defaults (no " + d.ConfigPath + ")"
		return c
	}
	if _, err := config.LoadFromPath(d.ConfigPath); err != nil {
		c.Status = CheckFail
		c.Message = "Config invalid: " + util.FirstLine(err.Error())
		c.Fix = "Fix the file or run: jiyuu config init --force"
		return c
	}
	c.Message = "Config valid: " + d.ConfigPath
	return c
}

func (d *Doctor) checkOllamaInstalled() *HealthCheck {
	c := &HealthCheck{Name: "ollama_installed"}
	path, err := findOllama()
	if err != nil {
		// A remote server is fine without a local binary.
		c.Status = CheckWarn
		if !d.Config.Model.AutoStart {
			c.Status = CheckPass
		}
		c.Message = "Ollama binary not found"
		switch runtime.GOOS {
		case "darwin":
			c.Fix = "brew install ollama"
		case "windows":
			c.Fix = "Download from https://ollama.com/download"
		default:
			c.Fix = "curl -fsSL https://ollama.com/install.sh | sh"
		}
		return c
	}
	c.Message = "Ollama installed: " + path
	return c
}

func (d *Doctor) checkOllamaRunning(ctx context.Context) *HealthCheck {
	c := &HealthCheck{Name: "ollama_running"}
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	if err := d.Client.CheckRunning(ctx); err != nil {
		c.Status = CheckFail
		if d.Config.Model.AutoStart && ollama.IsNotRunning(err) {
			c.Status = CheckWarn
		}
		c.Message = fmt.Sprintf("Ollama not reachable at %s", d.Client.BaseURL())
		c.Fix = "ollama serve"
		return c
	}
	c.Message = "Ollama running at " + d.Client.BaseURL()
	return c
}

func (d *Doctor) checkModel(ctx context.Context) *HealthCheck {
	c := &HealthCheck{Name: "model"}
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	id := d.Config.Model.ID
	ok, err := d.Client.HasModel(ctx, id)
	switch {
	case err != nil:
		c.Status = CheckWarn
		c.Message = "Could not list models: " + util.FirstLine(err.Error())
	case !ok:
		c.Status = CheckWarn
		if !d.Config.Model.AutoPull {
			c.Status = CheckFail
		}
		c.Message = "Model not downloaded: " + id
		c.Fix = "ollama pull " + id
	default:
		c.Message = "Model available: " + id
	}
	return c
}

func (d *Doctor) checkDataDir() *HealthCheck {
	c := &HealthCheck{Name: "data_dir"}
	dir := filepath.Dir(d.ConfigPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		c.Status = CheckFail
		c.Message = "Cannot create " + dir
		return c
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := util.AtomicWriteFile(probe, []byte("ok"), 0600); err != nil {
		c.Status = CheckFail
		c.Message = dir + " is not writable"
		return c
	}
	os.Remove(probe)
	c.Message = "Data directory writable: " + dir
	return c
}

// modelsDir is where Ollama stores model blobs.
func modelsDir() string {
	if dir := os.Getenv("OLLAMA_MODELS"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	if dir := filepath.Join(home, ".ollama"); dirExists(dir) {
		return dir
	}
	return home
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (d *Doctor) checkDiskSpace() *HealthCheck {
	c := &HealthCheck{Name: "disk_space"}
	dir := modelsDir()
	free, err := freeDiskSpace(dir)
	if err != nil {
		c.Status = CheckWarn
		c.Message = "Could not read free space of " + dir
		return c
	}
	gib := float64(free) / (1 << 30)
	if free < minModelSpace {
		c.Status = CheckWarn
		c.Message = fmt.Sprintf("Low disk space for models: %.1f GiB free in %s", gib, dir)
		c.Fix = "Free space or set OLLAMA_MODELS to a larger disk"
		return c
	}
	c.Message = fmt.Sprintf("Disk space: %.1f GiB free in %s", gib, dir)
	return c
}

// RunDoctor prints all checks and returns an error if any failed.
func RunDoctor(ctx context.Context, d *Doctor, out io.Writer) error {
	checks := d.Run(ctx)

	fmt.Fprintln(out, TitleStyle.Render("jiyuu doctor"))
	fmt.Fprintln(out)

	counts := map[CheckStatus]int{}
	for _, c := range checks {
		fmt.Fprintln(out, c.Render())
		counts[c.Status]++
	}

	summary := []string{fmt.Sprintf("%d passed", counts[CheckPass])}
	if n := counts[CheckWarn]; n > 0 {
		summary = append(summary, WarningStyle.Render(fmt.Sprintf("%d warning", n)))
	}
	if n := counts[CheckFail]; n > 0 {
		summary = append(summary, ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, DimStyle.Render(strings.Join(summary, ", ")))

	if n := counts[CheckFail]; n > 0 {
		return fmt.Errorf("%d health check(s) failed", n)
	}
	return nil
}
