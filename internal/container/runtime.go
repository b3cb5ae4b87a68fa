// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs external tools either directly on the host or
// inside a container runtime (docker or podman). Callers see one Runtime
// interface; an "image" is a container image for docker/podman and a binary
// name for the host runtime.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
	nameHost  = "host"
)

// Runtime provides tool operations: checking availability, verifying
// images, and running them.
type Runtime interface {
	// Name returns the runtime name ("docker", "podman", or "host").
	Name() string

	// Available reports whether the runtime itself is usable.
	Available() bool

	// ImageExists checks whether the named image (or host binary) is present.
	// Returns nil when found, or an error describing the failure.
	ImageExists(image string) error

	// Run executes image with args, piping stdin and stdout.
	Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)
	if err := r.exec.RunPiped(ctx, r.bin, full, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

// hostRuntime runs binaries found on PATH.
type hostRuntime struct {
	exec executor
}

func (h *hostRuntime) Name() string { return nameHost }

func (h *hostRuntime) Available() bool { return true }

// ImageExists checks that the binary is on PATH and answers --version.
func (h *hostRuntime) ImageExists(bin string) error {
	if _, err := h.exec.LookPath(bin); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", bin, err)
	}
	if err := h.exec.RunSilent(bin, "--version"); err != nil {
		return fmt.Errorf("%s --version failed: %w", bin, err)
	}
	return nil
}

func (h *hostRuntime) Run(ctx context.Context, bin string, args []string, stdin io.Reader, stdout io.Writer) error {
	if err := h.exec.RunPiped(ctx, bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Host returns the runtime that executes binaries directly.
func Host() Runtime {
	return &hostRuntime{exec: defaultExec}
}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
