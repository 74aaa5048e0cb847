package events

import (
	"fmt"
	"math"

	. "github.com/peddamat/tplink2mqtt/internal/core/domain"
	"github.com/peddamat/tplink2mqtt/pkg/kasa"
)

const (
	SENSOR_KEY_CURRENT_POWER = "current_power_w"
	SENSOR_KEY_TOTAL_ENERGY  = "total_energy_kwh"
	SENSOR_KEY_TODAY_ENERGY  = "today_energy_kwh"
	SENSOR_KEY_VOLTAGE       = "voltage"
	SENSOR_KEY_CURRENT       = "current_a"
)

// EmeterField selects the field of an emeter realtime reading a sensor
// reports. FieldNone marks sensors fed from somewhere else, like the
// daily energy counter.
type EmeterField uint8

const (
	FieldNone EmeterField = iota
	FieldPower
	FieldTotal
	FieldVoltage
	FieldCurrent
)

// SensorDescription is the static description of a sensor entity: its
// state key, display name and Home Assistant metadata.
type SensorDescription struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	StateClass  string
	Source      EmeterField
	Precision   uint
}

// EnergySensors describes the sensors of a device with an energy meter.
var EnergySensors = []SensorDescription{
	{
		Key:         SENSOR_KEY_CURRENT_POWER,
		Name:        "Current Consumption",
		Unit:        "W",
		DeviceClass: DEVICE_CLASS_POWER,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Source:      FieldPower,
		Precision:   1,
	},
	{
		Key:         SENSOR_KEY_TOTAL_ENERGY,
		Name:        "Total Consumption",
		Unit:        "kWh",
		DeviceClass: DEVICE_CLASS_ENERGY,
		StateClass:  STATE_CLASS_TOTAL_INCREASING,
		Source:      FieldTotal,
		Precision:   3,
	},
	{
		Key:         SENSOR_KEY_TODAY_ENERGY,
		Name:        "Today's Consumption",
		Unit:        "kWh",
		DeviceClass: DEVICE_CLASS_ENERGY,
		StateClass:  STATE_CLASS_TOTAL_INCREASING,
		Precision:   3,
	},
	{
		Key:         SENSOR_KEY_VOLTAGE,
		Name:        "Voltage",
		Unit:        "V",
		DeviceClass: DEVICE_CLASS_VOLTAGE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Source:      FieldVoltage,
		Precision:   1,
	},
	{
		Key:         SENSOR_KEY_CURRENT,
		Name:        "Current",
		Unit:        "A",
		DeviceClass: DEVICE_CLASS_CURRENT,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Source:      FieldCurrent,
		Precision:   2,
	},
}

// LuxSensors describes the sensors of a dimmable device. The brightness
// reading shares the state key of the power sensor.
var LuxSensors = []SensorDescription{
	{
		Key:         SENSOR_KEY_CURRENT_POWER,
		Name:        "Light Lux",
		Unit:        "lx",
		DeviceClass: DEVICE_CLASS_ILLUMINANCE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Source:      FieldPower,
		Precision:   1,
	},
}

// EmeterFromDevice derives the value of an energy sensor from a device
// snapshot. A nil value means the device does not report the reading.
func EmeterFromDevice(device *kasa.Device, description SensorDescription) *float64 {
	if field := description.Source; field != FieldNone {
		value := emeterValue(device.Emeter, field)
		if value == nil {
			return nil
		}
		return optionalFloat(roundTo(*value, description.Precision))
	}

	// SENSOR_KEY_TODAY_ENERGY
	if today := device.EmeterTodayKWh; today != nil {
		return optionalFloat(roundTo(*today, description.Precision))
	}
	// today's consumption is not available when the device was off all
	// day. Bulbs never report it, so filter it out
	if device.IsBulb() {
		return nil
	}
	return optionalFloat(0)
}

// LuxFromDevice derives the value of an illuminance sensor from the
// brightness of a device snapshot.
func LuxFromDevice(device *kasa.Device, description SensorDescription) *float64 {
	if device.Brightness == nil {
		return nil
	}
	return optionalFloat(roundTo(*device.Brightness, description.Precision))
}

func emeterValue(emeter *kasa.EmeterRealtime, field EmeterField) *float64 {
	if emeter == nil {
		return nil
	}
	switch field {
	case FieldPower:
		return emeter.PowerWatt
	case FieldTotal:
		return emeter.TotalKWh
	case FieldVoltage:
		return emeter.VoltageVolt
	case FieldCurrent:
		return emeter.CurrentAmp
	}
	return nil
}

// SmartPlugSensor binds a sensor description to the device it reads
// from. The description never changes, the device is replaced with a
// fresh snapshot on every poll.
type SmartPlugSensor struct {
	device      *kasa.Device
	description SensorDescription
	derive      func(*kasa.Device, SensorDescription) *float64
}

func NewEnergySensor(device *kasa.Device, description SensorDescription) *SmartPlugSensor {
	return &SmartPlugSensor{
		device:      device,
		description: description,
		derive:      EmeterFromDevice,
	}
}

func NewLuxSensor(device *kasa.Device, description SensorDescription) *SmartPlugSensor {
	return &SmartPlugSensor{
		device:      device,
		description: description,
		derive:      LuxFromDevice,
	}
}

func (sensor *SmartPlugSensor) Description() SensorDescription {
	return sensor.description
}

func (sensor *SmartPlugSensor) Device() *kasa.Device {
	return sensor.device
}

// UniqueID is stable across polls and restarts.
func (sensor *SmartPlugSensor) UniqueID() string {
	return UniqueId(kasa.LegacyDeviceID(sensor.device), sensor.description.Key)
}

// Name is the device alias followed by the description name.
func (sensor *SmartPlugSensor) Name() string {
	return fmt.Sprintf("%s %s", sensor.device.Alias, sensor.description.Name)
}

// NativeValue derives the current reading from the bound device.
func (sensor *SmartPlugSensor) NativeValue() *float64 {
	return sensor.derive(sensor.device, sensor.description)
}

// Rebind points the sensor at a fresh snapshot of its device.
func (sensor *SmartPlugSensor) Rebind(device *kasa.Device) {
	sensor.device = device
}

// SensorsForSnapshot enumerates the sensor entities of a device
// snapshot. Descriptions whose value cannot be derived from the
// snapshot are left out, so a set built at startup only contains
// readings the device actually reports.
func SensorsForSnapshot(parent *kasa.Device) []*SmartPlugSensor {
	var entities []*SmartPlugSensor

	if parent.IsDimmable {
		for _, description := range LuxSensors {
			if LuxFromDevice(parent, description) != nil {
				entities = append(entities, NewLuxSensor(parent, description))
			}
		}
	}

	if parent.HasEmeter {
		if parent.IsStrip() {
			// Historically only the children are added for strips
			for _, child := range parent.Children {
				entities = append(entities, energySensorsForDevice(child)...)
			}
		} else {
			entities = append(entities, energySensorsForDevice(parent)...)
		}
	}

	return uniqueSensors(entities)
}

func energySensorsForDevice(device *kasa.Device) []*SmartPlugSensor {
	var entities []*SmartPlugSensor
	for _, description := range EnergySensors {
		if EmeterFromDevice(device, description) != nil {
			entities = append(entities, NewEnergySensor(device, description))
		}
	}
	return entities
}

// PlugDevice builds the discovery device block of a device. Strip
// sockets get a block of their own, identified by their socket id.
func PlugDevice(info *kasa.DeviceInfo, device *kasa.Device) Device {
	return Device{
		Id:           kasa.LegacyDeviceID(device),
		Version:      info.SoftwareVersion,
		Manufacturer: "TP-Link",
		Model:        device.Model,
		Name:         device.Alias,
	}
}

// GenericSensorsForEntities maps enumerated sensor entities to discovery
// components. Every declared device links to the bridge through
// via_device, and only the first sensor of a device carries the full
// device block.
func GenericSensorsForEntities(info *kasa.DeviceInfo, entities []*SmartPlugSensor, bridgeDeviceId string) []GenericSensor {
	var sensors []GenericSensor

	described := make(map[string]bool)

	for _, entity := range entities {
		device := PlugDevice(info, entity.Device())
		device.ViaDevice = bridgeDeviceId
		if described[device.Id] {
			device = IdDevice(device)
		}
		described[device.Id] = true

		description := entity.Description()
		sensors = append(sensors, GenericSensor{
			Device:            device,
			Id:                entity.UniqueID(),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              entity.Name(),
			StateClass:        description.StateClass,
			DeviceClass:       description.DeviceClass,
			UnitOfMeasurement: description.Unit,
			UniqueId:          entity.UniqueID(),
		})
	}

	return sensors
}

func roundTo(value float64, decimals uint) float64 {
	factor := math.Pow10(int(decimals))
	return math.Round(value*factor) / factor
}

// uniqueSensors keeps the first entity of each unique id. A dimmable
// device with an energy meter describes a lux and a power sensor under
// the same key.
func uniqueSensors(entities []*SmartPlugSensor) []*SmartPlugSensor {
	seen := make(map[string]bool, len(entities))
	result := make([]*SmartPlugSensor, 0, len(entities))
	for _, entity := range entities {
		uid := entity.UniqueID()
		if seen[uid] {
			continue
		}
		seen[uid] = true
		result = append(result, entity)
	}
	return result
}

func optionalFloat(value float64) *float64 {
	return &value
}
