package kasa

import "fmt"

func CreateSimulatedPlugReader() (SmartDeviceReader, error) {
	return SimulatedPlugReader{}, nil
}

func CreateSimulatedStripReader() (SmartDeviceReader, error) {
	return SimulatedStripReader{}, nil
}

func CreateSimulatedDimmerReader() (SmartDeviceReader, error) {
	return SimulatedDimmerReader{}, nil
}

func CreateSimulatedBulbReader() (SmartDeviceReader, error) {
	return SimulatedBulbReader{}, nil
}

// Plug (HS110 style, single outlet with energy monitor)

type SimulatedPlugReader struct {
}

func (reader SimulatedPlugReader) Open() error {
	return nil
}

func (reader SimulatedPlugReader) Close() error {
	return nil
}

func (reader SimulatedPlugReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		DeviceID:        "8006A9C2E4F1D53B07C8A4E81B1F2D9A1C3E5B7D",
		Alias:           "Garage Plug",
		Model:           "HS110(EU)",
		MAC:             "50:C7:BF:11:A4:C2",
		HardwareVersion: "4.1",
		SoftwareVersion: "1.1.0 Build 201016 Rel.175121",
	}, nil
}

func (reader SimulatedPlugReader) GetSnapshot() (*Device, error) {
	return &Device{
		DeviceID:  "8006A9C2E4F1D53B07C8A4E81B1F2D9A1C3E5B7D",
		Alias:     "Garage Plug",
		Model:     "HS110(EU)",
		Type:      DeviceTypePlug,
		HasEmeter: true,
		Emeter: &EmeterRealtime{
			PowerWatt:   f64(31.72),
			TotalKWh:    f64(142.265),
			VoltageVolt: f64(233.48),
			CurrentAmp:  f64(0.138),
		},
		EmeterTodayKWh: f64(0.384),
	}, nil
}

// Strip (HS300 style, per socket energy monitor)

type SimulatedStripReader struct {
}

func (reader SimulatedStripReader) Open() error {
	return nil
}

func (reader SimulatedStripReader) Close() error {
	return nil
}

func (reader SimulatedStripReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		DeviceID:        "8006C153CFEBDE93CD3572549B5A47611F49F7D2",
		Alias:           "Media Strip",
		Model:           "HS300(EU)",
		MAC:             "50:C7:BF:5B:90:3E",
		HardwareVersion: "2.0",
		SoftwareVersion: "1.0.19 Build 200224 Rel.090814",
	}, nil
}

func (reader SimulatedStripReader) GetSnapshot() (*Device, error) {
	stripId := "8006C153CFEBDE93CD3572549B5A47611F49F7D2"
	socket := func(index int, alias string, power, total, today float64) *Device {
		child := &Device{
			DeviceID:  fmt.Sprintf("%s_%02d", stripId, index),
			Alias:     alias,
			Model:     "HS300(EU)",
			Type:      DeviceTypeStripSocket,
			HasEmeter: true,
			Emeter: &EmeterRealtime{
				PowerWatt:   f64(power),
				TotalKWh:    f64(total),
				VoltageVolt: f64(231.87),
				CurrentAmp:  f64(power / 231.87),
			},
		}
		// a socket that was off all day reports no today counter
		if today >= 0 {
			child.EmeterTodayKWh = f64(today)
		}
		return child
	}
	return &Device{
		DeviceID:  stripId,
		Alias:     "Media Strip",
		Model:     "HS300(EU)",
		Type:      DeviceTypeStrip,
		HasEmeter: true,
		Children: []*Device{
			socket(0, "TV", 87.35, 321.775, 0.912),
			socket(1, "Console", 1.92, 54.306, 0.017),
			socket(2, "Amplifier", 0, 12.441, -1),
		},
	}, nil
}

// Dimmer (HS220 style, no energy monitor, brightness sensor)

type SimulatedDimmerReader struct {
}

func (reader SimulatedDimmerReader) Open() error {
	return nil
}

func (reader SimulatedDimmerReader) Close() error {
	return nil
}

func (reader SimulatedDimmerReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		DeviceID:        "8006F0E2B51D4A7C930B861CA5E90D247B13F6A8",
		Alias:           "Hallway Dimmer",
		Model:           "HS220(US)",
		MAC:             "50:C7:BF:C0:17:9B",
		HardwareVersion: "1.0",
		SoftwareVersion: "1.5.7 Build 180128 Rel.144482",
	}, nil
}

func (reader SimulatedDimmerReader) GetSnapshot() (*Device, error) {
	return &Device{
		DeviceID:   "8006F0E2B51D4A7C930B861CA5E90D247B13F6A8",
		Alias:      "Hallway Dimmer",
		Model:      "HS220(US)",
		Type:       DeviceTypeDimmer,
		IsDimmable: true,
		Brightness: f64(75),
	}, nil
}

// Bulb (KL110 style, energy monitor without voltage/current/today)

type SimulatedBulbReader struct {
}

func (reader SimulatedBulbReader) Open() error {
	return nil
}

func (reader SimulatedBulbReader) Close() error {
	return nil
}

func (reader SimulatedBulbReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		DeviceID:        "8012E7D1F3A09B5C6478D2E0A1B3C5D7E9F0A2B4",
		Alias:           "Porch Bulb",
		Model:           "KL110(EU)",
		MAC:             "50:C7:BF:88:E1:06",
		HardwareVersion: "1.0",
		SoftwareVersion: "1.8.11 Build 191113 Rel.105336",
	}, nil
}

func (reader SimulatedBulbReader) GetSnapshot() (*Device, error) {
	return &Device{
		DeviceID:   "8012E7D1F3A09B5C6478D2E0A1B3C5D7E9F0A2B4",
		Alias:      "Porch Bulb",
		Model:      "KL110(EU)",
		Type:       DeviceTypeBulb,
		HasEmeter:  true,
		IsDimmable: true,
		Emeter: &EmeterRealtime{
			PowerWatt: f64(8.1),
			TotalKWh:  f64(19.447),
		},
		Brightness: f64(100),
	}, nil
}

func f64(value float64) *float64 {
	return &value
}
