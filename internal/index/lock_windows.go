//go:build windows

package index

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// One byte is enough; the region is only used as a mutex.
const lockRegionSize uint32 = 1

func tryLock(file *os.File) error {
	var ol windows.Overlapped
	return windows.LockFileEx(
		windows.Handle(file.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		lockRegionSize,
		0,
		&ol,
	)
}

func unlock(file *os.File) error {
	var ol windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, lockRegionSize, 0, &ol)
}

func lockBusy(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_SHARING_VIOLATION)
}
