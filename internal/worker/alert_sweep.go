package worker

// alert_sweep.go
// Background goroutine that periodically scans every inventory row and
// raises alerts that stock movements outside the service missed.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartAlertSweep ticks every interval until ctx is cancelled.
// A non-positive interval disables the sweep.
func StartAlertSweep(ctx context.Context, scanner StockScanner, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("alert_sweep: disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("alert_sweep: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alert_sweep: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, scanner)
			}
		}
	}()
}

func sweep(ctx context.Context, scanner StockScanner) {
	res, err := scanner.ScanAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert_sweep: scan failed")
		return
	}
	if res.Created > 0 {
		log.Info().Int("scanned", res.Scanned).Int("created", res.Created).Msg("alert_sweep: alerts raised")
	}
}
