package preflight

import (
	"fmt"
	"syscall"
)

// MinFileDescriptors is the limit below which watching large trees may fail.
const MinFileDescriptors = 1024

// CheckFileDescriptors checks the open file limit. It is required only when
// the catalog is watched, since fsnotify holds one descriptor per directory.
func (c *Checker) CheckFileDescriptors(watch bool) CheckResult {
	result := CheckResult{
		Name:     "file_descriptors",
		Required: watch,
	}

	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("failed to check file descriptor limit: %v", err)
		return result
	}

	if rLimit.Cur < MinFileDescriptors {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%d (minimum: %d)", rLimit.Cur, MinFileDescriptors)
		result.Details = "Run 'ulimit -n 10240' to increase the limit"
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%d (minimum: %d)", rLimit.Cur, MinFileDescriptors)
	return result
}
