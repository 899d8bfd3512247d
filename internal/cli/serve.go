package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/api"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start web interface")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on, tried incrementally if in use (default from config)").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeLogJson, _ = ra.NewBool("log-json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Write logs as JSON").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(port int, noOpen bool) {
	app := NewApp(false)

	if port == 0 {
		port = app.Config.ServePort
	}
	actualPort := findAvailablePort(port)

	server := api.NewServer(app.Session, actualPort, app.Paths.DataDir())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	fmt.Printf("swatch running at %s\n", RenderURL(url))
	fmt.Println(RenderMuted("Press Ctrl+C to stop"))

	if !noOpen && app.Config.ShouldOpenBrowser() {
		openBrowser(url)
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			Fatal(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			Fatal(err)
		}
		fmt.Println()
		PrintInfo("Stopped")
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if port > 65535 {
			break
		}
		if isPortAvailable(port) {
			return port
		}
	}
	// Let the server fail naturally on the original port
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
