package kasa

import (
	"fmt"
	"testing"
)

func TestLegacyDeviceID(t *testing.T) {

	plug := &Device{
		DeviceID: "8006A9C2E4F1D53B07C8A4E81B1F2D9A1C3E5B7D",
		Type:     DeviceTypePlug,
	}
	if id := LegacyDeviceID(plug); id != plug.DeviceID {
		t.Errorf("plug legacy id should be the device id, got %s", id)
	}

	socket := &Device{
		DeviceID: "8006C153CFEBDE93CD3572549B5A47611F49F7D2_01",
		Type:     DeviceTypeStripSocket,
	}
	if id := LegacyDeviceID(socket); id != "01" {
		t.Errorf("strip socket legacy id should drop the strip prefix, got %s", id)
	}

	badSocket := &Device{
		DeviceID: "no-separator",
		Type:     DeviceTypeStripSocket,
	}
	if id := LegacyDeviceID(badSocket); id != "no-separator" {
		t.Errorf("socket without prefix should keep its id, got %s", id)
	}
}

func TestDeviceTypeToString(t *testing.T) {

	if s := DeviceTypeToString(DeviceTypeStrip); s != "strip" {
		t.Errorf("unexpected type string %s", s)
	}
	if s := DeviceTypeToString(DeviceType(99)); s != "unknown(99)" {
		t.Errorf("unexpected type string %s", s)
	}
}

func TestSimulatedStripReader(t *testing.T) {

	reader, err := CreateSimulatedStripReader()
	if err != nil {
		t.Error(err)
	}

	err = reader.Open()
	if err != nil {
		t.Error(err)
	}

	info, err := reader.GetInfo()
	if err != nil {
		t.Error(err)
	}
	fmt.Printf("Device info: %+v\n", info)

	device, err := reader.GetSnapshot()
	if err != nil {
		t.Error(err)
	}

	if !device.IsStrip() || !device.HasEmeter {
		t.Error("strip should report emeter capability")
	}
	if len(device.Children) != 3 {
		t.Errorf("expected 3 sockets, got %d", len(device.Children))
	}
	for _, child := range device.Children {
		if !child.IsStripSocket() {
			t.Errorf("child %s should be a strip socket", child.Alias)
		}
		if child.Emeter == nil || child.Emeter.PowerWatt == nil {
			t.Errorf("child %s should report power", child.Alias)
		}
	}
}

func TestSimulatedDimmerReader(t *testing.T) {

	reader, err := CreateSimulatedDimmerReader()
	if err != nil {
		t.Error(err)
	}

	device, err := reader.GetSnapshot()
	if err != nil {
		t.Error(err)
	}

	if device.HasEmeter {
		t.Error("dimmer should not report emeter capability")
	}
	if !device.IsDimmable || device.Brightness == nil {
		t.Error("dimmer should report brightness")
	}
}

func TestSimulatedBulbReader(t *testing.T) {

	reader, err := CreateSimulatedBulbReader()
	if err != nil {
		t.Error(err)
	}

	device, err := reader.GetSnapshot()
	if err != nil {
		t.Error(err)
	}

	if !device.IsBulb() {
		t.Error("bulb snapshot should report bulb type")
	}
	if device.EmeterTodayKWh != nil {
		t.Error("bulb should not report a today counter")
	}
	if device.Emeter == nil || device.Emeter.VoltageVolt != nil {
		t.Error("bulb emeter should only report power and total")
	}
}
