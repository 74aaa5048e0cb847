package events

import (
	"testing"

	. "github.com/peddamat/tplink2mqtt/internal/core/domain"
	"github.com/peddamat/tplink2mqtt/pkg/kasa"

	"github.com/stretchr/testify/assert"
)

func simulatedSnapshot(t *testing.T, create func() (kasa.SmartDeviceReader, error)) *kasa.Device {
	reader, err := create()
	assert.NoError(t, err)
	device, err := reader.GetSnapshot()
	assert.NoError(t, err)
	assert.NotNil(t, device)
	return device
}

func energyDescription(key string) SensorDescription {
	for _, description := range EnergySensors {
		if description.Key == key {
			return description
		}
	}
	return SensorDescription{}
}

func TestEmeterFromDevice(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedPlugReader)

	assert.Equal(t, 31.7, *EmeterFromDevice(device, energyDescription(SENSOR_KEY_CURRENT_POWER)))
	assert.Equal(t, 142.265, *EmeterFromDevice(device, energyDescription(SENSOR_KEY_TOTAL_ENERGY)))
	assert.Equal(t, 0.384, *EmeterFromDevice(device, energyDescription(SENSOR_KEY_TODAY_ENERGY)))
	assert.Equal(t, 233.5, *EmeterFromDevice(device, energyDescription(SENSOR_KEY_VOLTAGE)))
	assert.Equal(t, 0.14, *EmeterFromDevice(device, energyDescription(SENSOR_KEY_CURRENT)))
}

func TestEmeterFromDeviceRounding(t *testing.T) {
	device := &kasa.Device{
		DeviceID:  "plug1",
		Type:      kasa.DeviceTypePlug,
		HasEmeter: true,
		Emeter: &kasa.EmeterRealtime{
			PowerWatt: optionalFloat(12.3456),
		},
	}
	description := energyDescription(SENSOR_KEY_CURRENT_POWER)

	assert.Equal(t, 12.3, *EmeterFromDevice(device, description))

	// halves round away from zero
	device.Emeter.PowerWatt = optionalFloat(1.25)
	assert.Equal(t, 1.3, *EmeterFromDevice(device, description))
}

func TestEmeterFromDeviceMissingFields(t *testing.T) {
	bulb := simulatedSnapshot(t, kasa.CreateSimulatedBulbReader)

	// bulbs report power and total only
	assert.NotNil(t, EmeterFromDevice(bulb, energyDescription(SENSOR_KEY_CURRENT_POWER)))
	assert.NotNil(t, EmeterFromDevice(bulb, energyDescription(SENSOR_KEY_TOTAL_ENERGY)))
	assert.Nil(t, EmeterFromDevice(bulb, energyDescription(SENSOR_KEY_VOLTAGE)))
	assert.Nil(t, EmeterFromDevice(bulb, energyDescription(SENSOR_KEY_CURRENT)))
	assert.Nil(t, EmeterFromDevice(bulb, energyDescription(SENSOR_KEY_TODAY_ENERGY)))
}

func TestEmeterFromDeviceTodayCounter(t *testing.T) {
	strip := simulatedSnapshot(t, kasa.CreateSimulatedStripReader)
	description := energyDescription(SENSOR_KEY_TODAY_ENERGY)

	tv := strip.Children[0]
	assert.Equal(t, 0.912, *EmeterFromDevice(tv, description))

	// a socket that was off all day reports no counter and reads zero
	amplifier := strip.Children[2]
	assert.Nil(t, amplifier.EmeterTodayKWh)
	assert.Equal(t, 0.0, *EmeterFromDevice(amplifier, description))
}

func TestLuxFromDevice(t *testing.T) {
	dimmer := simulatedSnapshot(t, kasa.CreateSimulatedDimmerReader)
	assert.Equal(t, 75.0, *LuxFromDevice(dimmer, LuxSensors[0]))

	plug := simulatedSnapshot(t, kasa.CreateSimulatedPlugReader)
	assert.Nil(t, LuxFromDevice(plug, LuxSensors[0]))
}

func TestSensorsForSnapshotPlug(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedPlugReader)

	entities := SensorsForSnapshot(device)
	assert.Len(t, entities, 5)

	assert.Equal(t, UniqueId(device.DeviceID, SENSOR_KEY_CURRENT_POWER), entities[0].UniqueID())
	assert.Equal(t, "Garage Plug Current Consumption", entities[0].Name())
	assertUniqueIds(t, entities)
}

func TestSensorsForSnapshotStrip(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedStripReader)

	entities := SensorsForSnapshot(device)
	assert.Len(t, entities, 15)

	// only the children are enumerated
	for _, entity := range entities {
		assert.True(t, entity.Device().IsStripSocket())
	}

	assert.Equal(t, "00_current_power_w", entities[0].UniqueID())
	assert.Equal(t, "TV Current Consumption", entities[0].Name())
	assert.Equal(t, "01_current_power_w", entities[5].UniqueID())
	assert.Equal(t, "Console Current Consumption", entities[5].Name())
	assertUniqueIds(t, entities)
}

func TestSensorsForSnapshotDimmer(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedDimmerReader)

	entities := SensorsForSnapshot(device)
	assert.Len(t, entities, 1)

	assert.Equal(t, "lx", entities[0].Description().Unit)
	assert.Equal(t, UniqueId(device.DeviceID, SENSOR_KEY_CURRENT_POWER), entities[0].UniqueID())
	assert.Equal(t, 75.0, *entities[0].NativeValue())
}

func TestSensorsForSnapshotBulb(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedBulbReader)

	// the lux sensor and the power sensor share a key, so the power
	// sensor is dropped. Today's consumption is filtered at setup
	entities := SensorsForSnapshot(device)
	assert.Len(t, entities, 2)

	assert.Equal(t, "lx", entities[0].Description().Unit)
	assert.Equal(t, 100.0, *entities[0].NativeValue())
	assert.Equal(t, SENSOR_KEY_TOTAL_ENERGY, entities[1].Description().Key)
	assert.Equal(t, 19.447, *entities[1].NativeValue())
	assertUniqueIds(t, entities)
}

func TestSensorUpdateEvents(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedPlugReader)
	entities := SensorsForSnapshot(device)

	events := SensorUpdateEvents(entities)
	assert.Len(t, events, 5)

	values := make(map[string]float64)
	for _, event := range events {
		update, ok := event.(FloatSensorUpdateEvent)
		assert.True(t, ok)
		values[update.SensorId()] = update.Value
	}

	assert.Equal(t, 31.7, values[UniqueId(device.DeviceID, SENSOR_KEY_CURRENT_POWER)])
	assert.Equal(t, 142.265, values[UniqueId(device.DeviceID, SENSOR_KEY_TOTAL_ENERGY)])
	assert.Equal(t, 0.384, values[UniqueId(device.DeviceID, SENSOR_KEY_TODAY_ENERGY)])
	assert.Equal(t, 233.5, values[UniqueId(device.DeviceID, SENSOR_KEY_VOLTAGE)])
	assert.Equal(t, 0.14, values[UniqueId(device.DeviceID, SENSOR_KEY_CURRENT)])
}

func TestSensorUpdateEventsSkipsMissingValues(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedPlugReader)
	entities := SensorsForSnapshot(device)

	// a later snapshot without voltage and current readings
	next := *device
	next.Emeter = &kasa.EmeterRealtime{
		PowerWatt: device.Emeter.PowerWatt,
		TotalKWh:  device.Emeter.TotalKWh,
	}
	for _, entity := range entities {
		entity.Rebind(&next)
	}

	events := SensorUpdateEvents(entities)
	assert.Len(t, events, 3)
}

func TestSensorValues(t *testing.T) {
	device := simulatedSnapshot(t, kasa.CreateSimulatedDimmerReader)
	entities := SensorsForSnapshot(device)

	values := SensorValues(entities)
	assert.Len(t, values, 1)
	assert.Equal(t, UniqueId(device.DeviceID, SENSOR_KEY_CURRENT_POWER), values[0].Id)
	assert.Equal(t, "Hallway Dimmer Light Lux", values[0].Name)
	assert.Equal(t, "lx", values[0].Unit)
	assert.Equal(t, 75.0, *values[0].Value)
}

func TestGenericSensorsForEntities(t *testing.T) {
	reader, err := kasa.CreateSimulatedStripReader()
	assert.NoError(t, err)
	info, err := reader.GetInfo()
	assert.NoError(t, err)
	parent, err := reader.GetSnapshot()
	assert.NoError(t, err)

	entities := SensorsForSnapshot(parent)
	sensors := GenericSensorsForEntities(info, entities, "bridge_id")
	assert.Len(t, sensors, 15)

	first := sensors[0]
	assert.Equal(t, "00", first.Device.Id)
	assert.Equal(t, "bridge_id", first.Device.ViaDevice)
	assert.Equal(t, "TP-Link", first.Device.Manufacturer)
	assert.Equal(t, "HS300(EU)", first.Device.Model)
	assert.Equal(t, SENSOR_TYPE_SENSOR, first.SensorType)
	assert.Equal(t, "00_current_power_w", first.UniqueId)
	assert.Equal(t, "W", first.UnitOfMeasurement)
	assert.Equal(t, STATE_CLASS_MEASUREMENT, first.StateClass)
	assert.Equal(t, DEVICE_CLASS_POWER, first.DeviceClass)

	// only the first sensor of a device carries the full block
	second := sensors[1]
	assert.Equal(t, "00", second.Device.Id)
	assert.Equal(t, "TV", second.Device.Name)
	assert.Empty(t, second.Device.Manufacturer)

	// the next socket starts a new full block
	console := sensors[5]
	assert.Equal(t, "01", console.Device.Id)
	assert.Equal(t, "TP-Link", console.Device.Manufacturer)
}

func assertUniqueIds(t *testing.T, entities []*SmartPlugSensor) {
	seen := make(map[string]bool)
	for _, entity := range entities {
		assert.False(t, seen[entity.UniqueID()], entity.UniqueID())
		seen[entity.UniqueID()] = true
	}
}
