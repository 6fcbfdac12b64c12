package preflight

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// CheckListenAddr checks that addr can be bound. A busy port only warns
// since serve can be given --addr.
func (c *Checker) CheckListenAddr(addr string) CheckResult {
	result := CheckResult{
		Name: "listen_addr",
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s unavailable: %v", addr, err)
		result.Details = "Pass --addr or set PROMPTDEX_ADDR to a free address"
		return result
	}
	_ = ln.Close()

	result.Status = StatusPass
	result.Message = addr
	return result
}

// CheckWritePermissions checks if the log directory can be written.
// The directory is created when missing.
func (c *Checker) CheckWritePermissions(dir string) CheckResult {
	result := CheckResult{
		Name: "log_dir",
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}

	testFile := filepath.Join(dir, ".promptdex-preflight-test")
	f, err := os.Create(testFile)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	result.Status = StatusPass
	result.Message = dir
	return result
}
