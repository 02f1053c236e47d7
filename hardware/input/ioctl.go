package input

import (
	"os"
	"unsafe"

	"github.com/juju/errors"

	"golang.org/x/sys/unix"
)

// asm-generic/ioctl.h
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, nr, size uint32) uintptr {
	const typ = 'E'
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

func eviocgversion() uintptr         { return ioc(iocRead, 0x01, 4) }
func eviocgid() uintptr              { return ioc(iocRead, 0x02, uint32(unsafe.Sizeof(inputID{}))) }
func eviocgname(size int) uintptr    { return ioc(iocRead, 0x06, uint32(size)) }
func eviocgbit(ev, size int) uintptr { return ioc(iocRead, uint32(0x20+ev), uint32(size)) }
func eviocgrab() uintptr             { return ioc(iocWrite, 0x90, 4) }

// struct input_id
type inputID struct {
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func ioctl(fd uintptr, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlPtr(fd uintptr, req uintptr, p unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(p))
	if errno != 0 {
		return errno
	}
	return nil
}

// control runs fn with raw descriptor without switching file to blocking mode,
// so pending Read still unblocks on Close.
func control(f *os.File, fn func(fd uintptr) error) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return errors.Trace(err)
	}
	var ferr error
	if err := rc.Control(func(fd uintptr) { ferr = fn(fd) }); err != nil {
		return errors.Trace(err)
	}
	return ferr
}
