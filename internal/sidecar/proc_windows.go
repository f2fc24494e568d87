//go:build windows

package sidecar

import (
	"os"
	"os/exec"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	jobOnce   sync.Once
	jobHandle windows.Handle
	jobErr    error
)

func setSysProcAttr(_ *exec.Cmd) {}

// bindLifetime places the worker in a job object configured to kill its
// members when the job handle is closed. The handle is owned by the
// launcher process and closed by the OS on any launcher exit, so the
// worker cannot outlive its parent.
func bindLifetime(proc *os.Process) error {
	jobOnce.Do(func() {
		jobHandle, jobErr = windows.CreateJobObject(nil, nil)
		if jobErr != nil {
			return
		}
		info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
			BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
				LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
			},
		}
		_, jobErr = windows.SetInformationJobObject(
			jobHandle,
			windows.JobObjectExtendedLimitInformation,
			uintptr(unsafe.Pointer(&info)),
			uint32(unsafe.Sizeof(info)),
		)
	})
	if jobErr != nil {
		return jobErr
	}

	procHandle, err := windows.OpenProcess(
		windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(proc.Pid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(procHandle)

	return windows.AssignProcessToJobObject(jobHandle, procHandle)
}
