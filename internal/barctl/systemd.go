// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import "github.com/coreos/go-systemd/v22/daemon"

// NotifyReady tells systemd the bar has finished composing all components
// and entered its event loop, a no-op outside a systemd unit (daemon.SdNotify
// returns false, nil when NOTIFY_SOCKET is unset).
func NotifyReady() error {
	_, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	return err
}

// NotifyStopping tells systemd the bar is tearing down.
func NotifyStopping() error {
	_, err := daemon.SdNotify(false, daemon.SdNotifyStopping)
	return err
}

// NotifyWatchdog pets the systemd watchdog. No code path in the bar calls
// it, so no watchdog pings are sent.
func NotifyWatchdog() error {
	_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
	return err
}
