package input

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

var ErrGrabbed = errors.New("This device is grabbed by another process. Try switching VT.")

type EventCaps struct {
	Type  uint16
	Codes []uint16
}

type DeviceInfo struct {
	Version int32
	Bus     uint16
	Vendor  uint16
	Product uint16
	IDVer   uint16
	Events  []EventCaps
}

// ReadInfo queries driver version, device id and supported event codes.
func ReadInfo(f *os.File) (DeviceInfo, error) {
	var info DeviceInfo
	err := control(f, func(fd uintptr) error { return readInfo(fd, &info) })
	return info, err
}

func readInfo(fd uintptr, info *DeviceInfo) error {
	if err := ioctlPtr(fd, eviocgversion(), unsafe.Pointer(&info.Version)); err != nil {
		return errors.Annotatef(err, "can't get version")
	}
	var id inputID
	if err := ioctlPtr(fd, eviocgid(), unsafe.Pointer(&id)); err != nil {
		return errors.Annotatef(err, "can't get id")
	}
	info.Bus, info.Vendor, info.Product, info.IDVer = id.Bus, id.Vendor, id.Product, id.Version

	var types [evMax/8 + 1]byte
	if err := ioctlPtr(fd, eviocgbit(0, len(types)), unsafe.Pointer(&types[0])); err != nil {
		return errors.Annotatef(err, "can't get event types")
	}
	for ev := 0; ev < evMax; ev++ {
		if !testBit(types[:], ev) {
			continue
		}
		caps := EventCaps{Type: uint16(ev)}
		if ev != evSyn {
			var codes [keyMax/8 + 1]byte
			if err := ioctlPtr(fd, eviocgbit(ev, len(codes)), unsafe.Pointer(&codes[0])); err != nil {
				return errors.Annotatef(err, "can't get codes type=%d", ev)
			}
			for code := 0; code < keyMax; code++ {
				if testBit(codes[:], code) {
					caps.Codes = append(caps.Codes, uint16(code))
				}
			}
		}
		info.Events = append(info.Events, caps)
	}
	return nil
}

func (self DeviceInfo) Format(w io.Writer) {
	fmt.Fprintf(w, "Input driver version is %d.%d.%d\n",
		self.Version>>16, (self.Version>>8)&0xff, self.Version&0xff)
	fmt.Fprintf(w, "Input device ID: bus 0x%x vendor 0x%x product 0x%x version 0x%x\n",
		self.Bus, self.Vendor, self.Product, self.IDVer)
	fmt.Fprintln(w, "Supported events:")
	for _, caps := range self.Events {
		fmt.Fprintf(w, "  Event type %d\n", caps.Type)
		if caps.Type == evSyn {
			continue
		}
		for _, code := range caps.Codes {
			fmt.Fprintf(w, "%d, ", code)
		}
		fmt.Fprintln(w)
	}
}

// ProbeGrab takes and immediately releases exclusive access.
// EBUSY means another process holds the device.
func ProbeGrab(f *os.File) error {
	return control(f, func(fd uintptr) error { return probeGrab(fd, f.Name()) })
}

func probeGrab(fd uintptr, name string) error {
	if err := ioctl(fd, eviocgrab(), 1); err != nil {
		if err == unix.EBUSY {
			return ErrGrabbed
		}
		return errors.Annotatef(err, "EVIOCGRAB path=%s", name)
	}
	if err := ioctl(fd, eviocgrab(), 0); err != nil {
		return errors.Annotatef(err, "EVIOCGRAB release path=%s", name)
	}
	return nil
}

// kernel bitmaps are arrays of long, byte addressing matches on little endian
func testBit(b []byte, bit int) bool {
	return b[bit/8]>>(uint(bit)%8)&1 == 1
}
