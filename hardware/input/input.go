// Linux evdev input devices: discovery, access checks and raw event source.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

const DefaultDir = "/dev/input"
const eventPrefix = "event"
const unknownName = "???"

type Device struct {
	Path   string
	Number int
	Name   string
}

func (d Device) String() string { return fmt.Sprintf("%s:  %s", d.Path, d.Name) }

// Scan lists event device nodes in dir ordered by number.
// Name is "???" when device could not be opened.
func Scan(dir string) ([]Device, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Annotatef(err, "input scan dir=%s", dir)
	}
	devices := make([]Device, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, eventPrefix) {
			continue
		}
		n, err := strconv.Atoi(name[len(eventPrefix):])
		if err != nil {
			continue
		}
		d := Device{Path: filepath.Join(dir, name), Number: n, Name: unknownName}
		if s, err := ReadName(d.Path); err == nil {
			d.Name = s
		}
		devices = append(devices, d)
	}
	if len(devices) == 0 {
		return nil, errors.NotFoundf("input devices in %s", dir)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Number < devices[j].Number })
	return devices, nil
}

func FormatDevices(w io.Writer, devices []Device) {
	fmt.Fprintln(w, "Available devices:")
	for _, d := range devices {
		fmt.Fprintln(w, d.String())
	}
}

// Choose picks device by its index in the list.
func Choose(devices []Device, answer string) (Device, error) {
	answer = strings.TrimSpace(answer)
	i, err := strconv.Atoi(answer)
	if err != nil || i < 0 || i >= len(devices) {
		return Device{}, errors.NotValidf("device index='%s' expected=[0-%d]", answer, len(devices)-1)
	}
	return devices[i], nil
}

func ReadName(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var buf [256]byte
	err = control(f, func(fd uintptr) error {
		return ioctlPtr(fd, eviocgname(len(buf)), unsafe.Pointer(&buf[0]))
	})
	if err != nil {
		return "", errors.Annotatef(err, "EVIOCGNAME path=%s", path)
	}
	return cstring(buf[:]), nil
}

// Open returns read-only device handle.
// Permission error carries hint to run as root.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) && !IsRoot() {
			return nil, errors.NewUnauthorized(err,
				fmt.Sprintf("You do not have access to %s. Try running as root instead.", path))
		}
		return nil, errors.Annotatef(err, "input open")
	}
	return f, nil
}

// IsDevice reports whether path is a character device, as opposed to recorded event dump.
func IsDevice(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, errors.Trace(err)
	}
	return fi.Mode()&os.ModeCharDevice != 0, nil
}

func IsRoot() bool { return unix.Getuid() == 0 }

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
