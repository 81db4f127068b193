package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/diwesta/byteship/internal/cliconfig"
	"github.com/diwesta/byteship/pkg/log"
	"github.com/diwesta/byteship/pkg/tail"
	"github.com/diwesta/byteship/pkg/writer"
	"github.com/diwesta/byteship/pkg/wsconn"
)

const helpDescription = `
Ship a file or stdin to a remote endpoint over TCP or WebSocket.

Payloads are written with Apple-safe semantics: SIGPIPE is disabled on the
socket, and on constrained platforms large buffers are split into bounded
segments with a flush and a short pause between them.

Modes:
  default    send the input as one message (files are chunked per policy)
  --text     send each input line as a terminator-framed text message
  --follow   tail the file and stream appended bytes until interrupted
`

var exampleUsage = strings.TrimSpace(`
  byteship --addr localhost:9000 payload.bin
  byteship --addr ws://localhost:9000/ingest --follow app.log
  echo PING | byteship --addr localhost:9000 --text
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "byteship [file]",
		Short:   "Ship a file or stdin to a remote endpoint over TCP or WebSocket",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.MaximumNArgs(1),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config file first (default ~/.byteship/config.toml), then env,
			// then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Follow && len(args) == 0 {
				return fmt.Errorf("--follow requires a file argument")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-sigCh:
					zl.Info().Msg("received signal, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			return ship(ctx, cfg, args, log.WrapZerolog(zl))
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.byteship/config.toml)")
	root.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "destination host:port, or a ws:// / wss:// URL")
	root.Flags().BoolVar(&cfg.Text, "text", cfg.Text, "send each input line as a terminator-framed text message")
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "tail the file and stream appended bytes")
	root.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "segment size for buffer writes (0 = platform default)")
	root.Flags().DurationVar(&cfg.Pacing, "pacing", cfg.Pacing, "pause between chunked segment writes")
	root.Flags().DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "connection establishment timeout")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("byteship")
		os.Exit(1)
	}
}

// ship dials the destination, configures the connection, and appends the
// input according to the configured mode.
func ship(ctx context.Context, cfg cliconfig.Config, args []string, logger log.Logger) error {
	w, conn, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	w.ConfigureForApple()

	switch {
	case cfg.Follow:
		return shipFollow(ctx, w, args[0])
	case cfg.Text:
		in := io.Reader(os.Stdin)
		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return shipText(w, in)
	default:
		return shipRaw(w, args)
	}
}

// connect establishes the transport named by cfg.Addr and wraps it in a
// Writer. WebSocket URLs go through the wsconn adapter; everything else is
// plain TCP.
func connect(ctx context.Context, cfg cliconfig.Config, logger log.Logger) (*writer.Writer, net.Conn, error) {
	opts := []writer.Option{
		writer.WithLogger(logger),
		writer.WithPolicy(cfg.Policy()),
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if strings.HasPrefix(cfg.Addr, "ws://") || strings.HasPrefix(cfg.Addr, "wss://") {
		wc, nc, err := wsconn.Dial(dialCtx, cfg.Addr)
		if err != nil {
			return nil, nil, err
		}
		w, err := writer.New(nc, append(opts, writer.WithConn(wc))...)
		if err != nil {
			nc.Close()
			return nil, nil, err
		}
		return w, nc, nil
	}

	var d net.Dialer
	nc, err := d.DialContext(dialCtx, "tcp", cfg.Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", cfg.Addr, err)
	}
	w, err := writer.New(nc, opts...)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return w, nc, nil
}

// shipFollow streams the file's contents and subsequent appends as one
// message, until the context is cancelled.
func shipFollow(ctx context.Context, w *writer.Writer, path string) error {
	t, err := tail.Follow(path)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		t.Close()
	}()
	if !w.Append(writer.Stream{R: t}) {
		return fmt.Errorf("append failed")
	}
	return nil
}

// shipText sends each input line as a Text payload and stops at the first
// failure.
func shipText(w *writer.Writer, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !w.Append(writer.Text(scanner.Text())) {
			return fmt.Errorf("append failed")
		}
	}
	return scanner.Err()
}

// shipRaw sends a file as one chunked buffer, or streams stdin.
func shipRaw(w *writer.Writer, args []string) error {
	if len(args) == 0 {
		if !w.Append(writer.Stream{R: os.Stdin}) {
			return fmt.Errorf("append failed")
		}
		return nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if !w.Append(writer.Bytes(b)) {
		return fmt.Errorf("append failed")
	}
	return nil
}
