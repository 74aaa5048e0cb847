package kasa

import (
	"fmt"
	"strings"
)

// device types
const (
	DeviceTypePlug DeviceType = iota + 1
	DeviceTypeBulb
	DeviceTypeStrip
	DeviceTypeStripSocket
	DeviceTypeDimmer
)

// device type strings
const (
	DeviceTypePlugStr        = "plug"
	DeviceTypeBulbStr        = "bulb"
	DeviceTypeStripStr       = "strip"
	DeviceTypeStripSocketStr = "strip_socket"
	DeviceTypeDimmerStr      = "dimmer"
	DeviceTypeUnknownStr     = "unknown"
)

type DeviceType uint8

func DeviceTypeToString(deviceType DeviceType) string {
	switch deviceType {
	case DeviceTypePlug:
		return DeviceTypePlugStr
	case DeviceTypeBulb:
		return DeviceTypeBulbStr
	case DeviceTypeStrip:
		return DeviceTypeStripStr
	case DeviceTypeStripSocket:
		return DeviceTypeStripSocketStr
	case DeviceTypeDimmer:
		return DeviceTypeDimmerStr
	default:
		return fmt.Sprintf("%s(%d)", DeviceTypeUnknownStr, deviceType)
	}
}

// EmeterRealtime is the instantaneous metering reading of a device.
// Fields a device does not report are nil.
type EmeterRealtime struct {
	PowerWatt   *float64
	TotalKWh    *float64
	VoltageVolt *float64
	CurrentAmp  *float64
}

type DeviceInfo struct {
	DeviceID        string
	Alias           string
	Model           string
	MAC             string
	HardwareVersion string
	SoftwareVersion string
}

// Device is a point-in-time snapshot of a smart device. A strip carries
// one child snapshot per socket, each with its own metering reading.
type Device struct {
	DeviceID   string
	Alias      string
	Model      string
	Type       DeviceType
	HasEmeter  bool
	IsDimmable bool

	Emeter         *EmeterRealtime
	EmeterTodayKWh *float64
	Brightness     *float64

	Children []*Device
}

func (d *Device) IsStrip() bool {
	return d.Type == DeviceTypeStrip
}

func (d *Device) IsStripSocket() bool {
	return d.Type == DeviceTypeStripSocket
}

func (d *Device) IsBulb() bool {
	return d.Type == DeviceTypeBulb
}

// LegacyDeviceID returns the device id as used by the original platform
// integration. Strip sockets are reported with the parent strip id as
// prefix, which is dropped here.
func LegacyDeviceID(d *Device) string {
	if d.IsStripSocket() {
		parts := strings.SplitN(d.DeviceID, "_", 2)
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return d.DeviceID
}

type SmartDeviceReader interface {
	Open() error
	Close() error
	GetInfo() (*DeviceInfo, error)
	GetSnapshot() (*Device, error)
}
