// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import "os/exec"

// shellCommand builds an unattached "$SHELL -c payload" command, the same
// shell-literal-command contract "%{A:cmd:}" actions and click-left/right
// fallbacks document, grounded on original_source's action execution going
// through `/bin/sh -c`.
func shellCommand(payload string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", payload)
}
