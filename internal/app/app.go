// Package app is the public WLAN surface: one coherent API over the
// session manager, scan coordinator, ioctl dispatcher and packet gateway.
// Pure glue; every behavior lives in the services it fronts.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/wland/internal/config"
	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
	"github.com/lcalzada-xor/wland/internal/core/services/callback"
	"github.com/lcalzada-xor/wland/internal/core/services/channels"
	"github.com/lcalzada-xor/wland/internal/core/services/credential"
	"github.com/lcalzada-xor/wland/internal/core/services/ioctl"
	"github.com/lcalzada-xor/wland/internal/core/services/scan"
	"github.com/lcalzada-xor/wland/internal/core/services/session"
)

// App ties the subsystem together. Mutating calls return a synchronous
// ok/error covering validation and submission only; outcomes stream
// through the registered callbacks.
type App struct {
	registry *callback.Registry
	dispatch *callback.Dispatcher
	chans    *channels.Manager
	manager  *session.Manager
	ioctls   *ioctl.Dispatcher
	survey   ports.SurveyRecorder
}

// New wires the core over the given collaborators. survey may be nil.
func New(cfg *config.Config, drv ports.Driver, supp ports.Supplicant, global ports.SettingStore, survey ports.SurveyRecorder) (*App, error) {
	registry := callback.NewRegistry()
	dispatch := callback.NewDispatcher(registry)

	chans, err := channels.NewManager(domain.RegulatoryDomain(cfg.Domain), drv.SetChannels)
	if err != nil {
		return nil, fmt.Errorf("channel manager: %w", err)
	}

	a := &App{
		registry: registry,
		dispatch: dispatch,
		chans:    chans,
		manager:  session.NewManager(drv, supp, chans, dispatch, survey),
		ioctls:   ioctl.NewDispatcher(global, drv.TargetSettings()),
		survey:   survey,
	}
	go dispatch.Run()
	return a, nil
}

// Init starts the driver and the event machinery. Init and Stop bracket
// the subsystem's process-wide lifecycle.
func (a *App) Init(params domain.StartParameters) error {
	return a.manager.Start(params)
}

// Stop tears both sessions down, clears credential material and stops the
// driver.
func (a *App) Stop() error {
	return a.manager.Stop()
}

// Close releases everything after a final Stop. The App is unusable
// afterwards.
func (a *App) Close() error {
	err := a.manager.Stop()
	a.dispatch.Close()
	if a.survey != nil {
		if cerr := a.survey.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// ConnectOpen connects to an unencrypted network.
func (a *App) ConnectOpen(common domain.CommonConnectParameters) error {
	return a.manager.Connect(common, credential.NoCredential())
}

// ConnectWEP connects with WEP encryption.
func (a *App) ConnectWEP(common domain.CommonConnectParameters, wep domain.WEPConnectParameters) error {
	cred, err := credential.WEP(wep)
	if err != nil {
		return err
	}
	return a.manager.Connect(common, cred)
}

// ConnectWPAPSK connects with a pre-derived WPA key.
func (a *App) ConnectWPAPSK(common domain.CommonConnectParameters, psk domain.WPAPSKConnectParameters) error {
	cred, err := credential.WPAPSK(psk)
	if err != nil {
		return err
	}
	return a.manager.Connect(common, cred)
}

// ConnectEnterprise connects with 802.1X authentication.
func (a *App) ConnectEnterprise(common domain.CommonConnectParameters, ent domain.EnterpriseConnectParameters) error {
	cred, err := credential.Enterprise(ent)
	if err != nil {
		return err
	}
	return a.manager.Connect(common, cred)
}

// Disconnect ends the station attempt or association; a no-op success
// when idle.
func (a *App) Disconnect() error {
	return a.manager.Disconnect()
}

// Scan streams discovered BSSs to cb. Rejected with ErrScanBusy while
// another scan is in flight.
func (a *App) Scan(ctx context.Context, params domain.ScanParameters, cb scan.Indication) error {
	if !a.manager.Started() {
		return domain.ErrNotStarted
	}
	return a.manager.Scans().Begin(ctx, params, cb)
}

// GetRSSI returns the last sampled signal strength in dBm. Stale unless
// connected.
func (a *App) GetRSSI() int16 {
	return a.manager.RSSI()
}

// APStartOpen starts an open access point.
func (a *App) APStartOpen(common domain.CommonAPParameters) error {
	return a.manager.APStart(common, nil, credential.NoCredential())
}

// APStartWPAPSK starts a WPA-PSK access point.
func (a *App) APStartWPAPSK(common domain.CommonAPParameters, wpa domain.WPAPSKAPParameters) error {
	cred, err := credential.APWPAPSK(wpa)
	if err != nil {
		return err
	}
	return a.manager.APStart(common, &wpa, cred)
}

// APStop brings the access point down; a no-op success when already down.
func (a *App) APStop() error {
	return a.manager.APStop()
}

// SendPacket forwards one Ethernet frame. Fire and forget: dropped
// silently unless the station session is connected.
func (a *App) SendPacket(frame []byte) {
	a.manager.Gateway().Send(frame)
}

// RegisterStatusCallback subscribes to the status stream and returns the
// handle for deregistration. Callbacks must not call back into this API.
func (a *App) RegisterStatusCallback(fn callback.StatusFunc) callback.SubscriptionID {
	return a.registry.RegisterStatus(fn)
}

// DeregisterStatusCallback removes a subscription. Unknown handles are a
// no-op success.
func (a *App) DeregisterStatusCallback(id callback.SubscriptionID) {
	a.registry.DeregisterStatus(id)
}

// RegisterPacketIndicationCallback installs the single data-path
// consumer. The last registration wins; nil clears it.
func (a *App) RegisterPacketIndicationCallback(fn callback.PacketFunc) {
	a.registry.RegisterPacketIndication(fn)
}

// PSKFromPassphrase derives the 32-byte WPA key for a passphrase/SSID
// pair. Deterministic.
func (a *App) PSKFromPassphrase(passphrase string, ssid domain.SSID) ([domain.PSKLength]byte, error) {
	return credential.PSKFromPassphrase(passphrase, ssid)
}

// SetChannelList installs the requested channel list; nil restores the
// default. The driver receives the regulatory-filtered result.
func (a *App) SetChannelList(list domain.ChannelList) error {
	return a.chans.Set(list)
}

// GetChannelList returns the requested list (or the default).
func (a *App) GetChannelList() domain.ChannelList {
	return a.chans.Get()
}

// GetActiveChannelList returns the regulatory-filtered list in use.
func (a *App) GetActiveChannelList() domain.ChannelList {
	return a.chans.GetActive()
}

// Ioctl executes one numeric-keyed control request. value is read for
// set ids and written for get ids, and left untouched on error.
func (a *App) Ioctl(id domain.Ioctl, value *uint32) error {
	return a.ioctls.Dispatch(id, value)
}

// Run blocks until ctx is cancelled, then stops the subsystem.
func (a *App) Run(ctx context.Context) error {
	<-ctx.Done()
	slog.Info("shutting down")
	return a.Close()
}
