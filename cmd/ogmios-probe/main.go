// ogmios-probe dials a bridge, prints its chain tip and current epoch,
// and exits. Useful as a smoke test against a freshly started bridge.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	ogmios "github.com/ocx/ogmios-go"
	"github.com/ocx/ogmios-go/transport"
)

func main() {
	host := flag.String("host", "localhost", "bridge host")
	port := flag.Int("port", 1337, "bridge port")
	tls := flag.Bool("tls", false, "use wss/https")
	timeout := flag.Duration("timeout", 10*time.Second, "dial and query timeout")
	flag.Parse()

	logger := slog.Default()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := ogmios.Dial(ctx, ogmios.Config{
		Host: *host,
		Port: *port,
		TLS:  *tls,
		// Two queries share this connection below, so keep the socket
		// open past the first completion.
		InteractionType: transport.LongRunning,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("dial failed", "error", err)
		os.Exit(1)
	}
	defer client.Shutdown()

	tip, err := client.StateQuery().ChainTip(ctx)
	if err != nil {
		logger.Error("chainTip query failed", "error", err)
		os.Exit(1)
	}

	epoch, err := client.StateQuery().CurrentEpoch(ctx)
	if err != nil {
		logger.Error("currentEpoch query failed", "error", err)
		os.Exit(1)
	}

	if tip.IsOrigin {
		logger.Info("bridge reachable", "tip", "origin", "epoch", epoch)
		return
	}
	logger.Info("bridge reachable", "slot", tip.Point.Slot, "hash", tip.Point.Hash, "epoch", epoch)
}
