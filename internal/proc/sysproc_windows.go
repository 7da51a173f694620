//go:build windows

package proc

import (
	"syscall"

	winapi "golang.org/x/sys/windows"
)

// A new process group keeps console signals for the editor away from the browser.
func newSysProcAttrForGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: winapi.CREATE_NEW_PROCESS_GROUP}
}
