package events

import (
	. "github.com/peddamat/tplink2mqtt/internal/core/domain"
)

// SensorUpdateEvents derives one update event per sensor entity from
// the device currently bound to it. Entities whose value cannot be
// derived from the snapshot are skipped until a later poll reports
// them again.
func SensorUpdateEvents(entities []*SmartPlugSensor) []any {
	var events []any

	for _, entity := range entities {
		value := entity.NativeValue()
		if value == nil {
			continue
		}
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: entity.UniqueID(),
			},
			Value:    *value,
			Decimals: entity.Description().Precision,
		})
	}

	return events
}

// SensorValues maps sensor entities to their current readings for
// request/response use.
func SensorValues(entities []*SmartPlugSensor) []SensorValue {
	var values []SensorValue

	for _, entity := range entities {
		values = append(values, SensorValue{
			Id:    entity.UniqueID(),
			Name:  entity.Name(),
			Unit:  entity.Description().Unit,
			Value: entity.NativeValue(),
		})
	}

	return values
}
