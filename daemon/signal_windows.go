//go:build windows

package daemon

import "os"

func reloadSignals() []os.Signal {
	return nil
}
