package orchestrator

import (
	"context"
	"net"
	"net/http"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServer_ShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- RunServer(ctx, server, listener, time.Second)
	}()

	resp, err := http.Get("http://" + listener.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func binDirFor(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return filepath.Dir(path)
}

func TestRunToCompletion(t *testing.T) {
	sm := NewServiceManager(binDirFor(t, "true"), "")
	assert.NoError(t, sm.RunToCompletion(context.Background(), "true"))

	sm = NewServiceManager(binDirFor(t, "false"), "")
	assert.Error(t, sm.RunToCompletion(context.Background(), "false"))
}

func TestWait_StopsServicesOnCancel(t *testing.T) {
	sm := NewServiceManager(binDirFor(t, "sleep"), "")
	sm.grace = time.Second
	require.NoError(t, sm.Start(context.Background(), "sleep", "30"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := sm.Wait(ctx)

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestWait_NothingStarted(t *testing.T) {
	assert.NoError(t, NewServiceManager(".", "").Wait(context.Background()))
}

func TestSignalHandler_CancelsOnSignal(t *testing.T) {
	sh := NewSignalHandler()
	defer sh.Stop()

	ctx, cancel := sh.Context(context.Background())
	defer cancel()

	sh.sigChan <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
}
