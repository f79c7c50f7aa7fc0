package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/wland/internal/adapters/certstore"
	"github.com/lcalzada-xor/wland/internal/adapters/driver/sim"
	"github.com/lcalzada-xor/wland/internal/adapters/storage"
	"github.com/lcalzada-xor/wland/internal/adapters/supplicant"
	"github.com/lcalzada-xor/wland/internal/app"
	"github.com/lcalzada-xor/wland/internal/config"
	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
	"github.com/lcalzada-xor/wland/internal/telemetry"
)

// demoEnvironment is the scripted radio environment served by the
// simulation driver. Hardware driver adapters plug in behind the same
// port.
func demoEnvironment() []sim.Network {
	return []sim.Network{
		{BSS: domain.BSSDescriptor{
			BSSID:                domain.MACAddress{0x00, 0x17, 0xf2, 0x10, 0x20, 0x30},
			SSID:                 "HomeNetwork",
			Channel:              6,
			RSSI:                 -52,
			AuthenticationSuites: domain.AuthSuitePSK | domain.AuthSuiteUseWPA2,
			UnicastCiphers:       domain.CipherAESCCMP,
			GroupCipher:          domain.CipherAESCCMP,
		}},
		{BSS: domain.BSSDescriptor{
			BSSID:   domain.MACAddress{0x50, 0xc7, 0xbf, 0x44, 0x55, 0x66},
			SSID:    "Guest-WiFi",
			Channel: 11,
			RSSI:    -71,
		}},
		{BSS: domain.BSSDescriptor{
			BSSID:                domain.MACAddress{0xa0, 0x63, 0x91, 0xaa, 0xbb, 0xcc},
			SSID:                 "Office-Network",
			Channel:              36,
			RSSI:                 -60,
			AuthenticationSuites: domain.AuthSuite8021X | domain.AuthSuiteUseWPA2,
			UnicastCiphers:       domain.CipherAESCCMP,
			GroupCipher:          domain.CipherAESCCMP,
		}, Behavior: sim.BehaviorAuthTimeout},
	}
}

func main() {
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	var survey ports.SurveyRecorder
	if cfg.DBPath != "" {
		store, err := storage.NewSurveyStore(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to open survey store", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		survey = store
	}

	drv := sim.NewDriver(demoEnvironment())
	supp := supplicant.New(certstore.NewDirStore(cfg.CertDir))

	application, err := app.New(cfg, drv, supp, sim.NewSettingStore(), survey)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Init(domain.StartParameters{}); err != nil {
		slog.Error("Failed to start wlan subsystem", "error", err)
		os.Exit(1)
	}

	application.RegisterStatusCallback(func(ind domain.StatusIndication) {
		slog.Info("status", "kind", ind.Kind.String(), "reason", ind.Reason.String(), "bssid", ind.BSSID)
	})

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("wland starting", "interface", cfg.Interface, "domain", cfg.Domain)

	if err := application.Run(ctx); err != nil {
		slog.Error("Application error", "error", err)
	}
}
