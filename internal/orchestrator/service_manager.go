package orchestrator

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// ServiceManager runs the service binaries that live side by side in binDir
type ServiceManager struct {
	binDir string
	binExt string
	grace  time.Duration

	mu       sync.Mutex
	services map[string]*exec.Cmd
}

// NewServiceManager creates a manager for binaries in binDir, e.g. "./api"+binExt
func NewServiceManager(binDir, binExt string) *ServiceManager {
	return &ServiceManager{
		binDir:   binDir,
		binExt:   binExt,
		grace:    5 * time.Second,
		services: map[string]*exec.Cmd{},
	}
}

func (sm *ServiceManager) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, filepath.Join(sm.binDir, name+sm.binExt), args...)
	cmd.Stdout = log.Logger
	cmd.Stderr = log.Logger
	// cancellation asks for a graceful stop; Wait kills after the grace period
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = sm.grace
	return cmd
}

// RunToCompletion runs a one-shot binary, such as the importer, and waits for it
func (sm *ServiceManager) RunToCompletion(ctx context.Context, name string, args ...string) error {
	log.Info().Str("service", name).Msg("Running service to completion...")

	if err := sm.command(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}

	log.Info().Str("service", name).Msg("Service completed successfully")
	return nil
}

// Start launches a long-running binary
func (sm *ServiceManager) Start(ctx context.Context, name string, args ...string) error {
	log.Info().Str("service", name).Msg("Starting service...")

	cmd := sm.command(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	sm.mu.Lock()
	sm.services[name] = cmd
	sm.mu.Unlock()
	return nil
}

type serviceExit struct {
	name string
	err  error
}

// Wait blocks until any started service exits or ctx is cancelled, then stops the rest
func (sm *ServiceManager) Wait(ctx context.Context) error {
	sm.mu.Lock()
	started := make(map[string]*exec.Cmd, len(sm.services))
	for name, cmd := range sm.services {
		started[name] = cmd
	}
	sm.services = map[string]*exec.Cmd{}
	sm.mu.Unlock()

	if len(started) == 0 {
		return nil
	}

	done := make(chan serviceExit, len(started))
	for name, cmd := range started {
		go func(name string, cmd *exec.Cmd) {
			done <- serviceExit{name: name, err: cmd.Wait()}
		}(name, cmd)
	}

	var result error
	remaining := len(started)
	select {
	case e := <-done:
		remaining--
		if e.err != nil {
			log.Error().Err(e.err).Str("service", e.name).Msg("Service exited with error")
			result = fmt.Errorf("%s exited: %w", e.name, e.err)
		} else {
			log.Info().Str("service", e.name).Msg("Service exited")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down services...")
	}

	sm.shutdown(started, done, remaining)
	return result
}

// shutdown sends SIGTERM and kills whatever is still running after the grace period
func (sm *ServiceManager) shutdown(started map[string]*exec.Cmd, done <-chan serviceExit, remaining int) {
	for _, cmd := range started {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(syscall.SIGTERM)
		}
	}

	deadline := time.After(sm.grace)
	for remaining > 0 {
		select {
		case e := <-done:
			remaining--
			log.Info().Str("service", e.name).Msg("Service stopped")
		case <-deadline:
			for name, cmd := range started {
				if cmd.Process != nil {
					log.Warn().Str("service", name).Msg("Service did not stop in time, killing")
					_ = cmd.Process.Kill()
				}
			}
			return
		}
	}
}
