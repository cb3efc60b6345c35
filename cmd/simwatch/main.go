// simwatch pushes randomized vitals snapshots into the record store so a
// running server has something to monitor. It stands in for the watch
// firmware during development and demos.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

func main() {
	var (
		storeURL   string
		storeAuth  string
		identityID string
		interval   time.Duration
		fallChance float64
	)

	cmd := &cobra.Command{
		Use:          "simwatch",
		Short:        "Simulate a NeuroWatch device pushing vitals",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			var rs store.RecordStore
			if storeURL != "" {
				rs = store.NewHTTPStore(storeURL, storeAuth, interval)
			} else {
				logger.Warn("no --store given; writing to a throwaway in-memory store")
				rs = store.NewMemStore()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			path := "watch_data/" + identityID
			logger.Info("simulating watch", zap.String("path", path), zap.Duration("interval", interval))

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				snap := randomSnapshot(rng, fallChance)
				if err := rs.Put(ctx, path, snap); err != nil {
					logger.Error("push failed", zap.Error(err))
				} else {
					logger.Info("pushed snapshot",
						zap.Float64p("heart_rate", snap.HeartRate),
						zap.Float64p("tremor", snap.Tremor),
						zap.Boolp("fall_detected", snap.FallDetected))
				}
				select {
				case <-ctx.Done():
					logger.Info("simulator stopped")
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().StringVar(&storeURL, "store", os.Getenv("STORE_URL"), "record store base URL")
	cmd.Flags().StringVar(&storeAuth, "auth", os.Getenv("STORE_AUTH"), "record store auth token")
	cmd.Flags().StringVar(&identityID, "identity", "", "identity to push snapshots for")
	cmd.Flags().DurationVar(&interval, "interval", 3*time.Second, "time between pushes")
	cmd.Flags().Float64Var(&fallChance, "fall-chance", 0.02, "probability a push reports a fall")
	_ = cmd.MarkFlagRequired("identity")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// randomSnapshot drifts around plausible resting values with occasional
// spikes so risk levels actually change over a demo session.
func randomSnapshot(rng *rand.Rand, fallChance float64) models.VitalMetricsSnapshot {
	hr := 60 + rng.Float64()*40
	if rng.Float64() < 0.1 {
		hr = 100 + rng.Float64()*30 // tachycardic spike
	}
	gait := 55 + rng.Float64()*45
	tremor := rng.Float64() * 80
	voice := 60 + rng.Float64()*40
	breathing := 12 + rng.Float64()*8
	sleep := 50 + rng.Float64()*50
	fall := rng.Float64() < fallChance
	movement := "Normal"
	if tremor > 60 {
		movement = "Irregular"
	}
	return models.VitalMetricsSnapshot{
		HeartRate:      &hr,
		Gait:           &gait,
		Tremor:         &tremor,
		Voice:          &voice,
		Breathing:      &breathing,
		SleepQuality:   &sleep,
		FallDetected:   &fall,
		MuscleMovement: &movement,
	}
}
