package domain

import "github.com/peddamat/tplink2mqtt/pkg/kasa"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_DEVICE       = "device"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetDeviceInfoRequest struct {
	ActorRequestMixIn
}

type GetDeviceInfoResponse struct {
	ActorResponseMixIn
	Info *kasa.DeviceInfo
}

type GetSnapshotRequest struct {
	ActorRequestMixIn
}

type GetSnapshotResponse struct {
	ActorResponseMixIn
	Device *kasa.Device
}

type GetSensorEntitiesRequest struct {
	ActorRequestMixIn
}

type GetSensorEntitiesResponse struct {
	ActorResponseMixIn
	Sensors []GenericSensor
}

type SensorValue struct {
	Id    string
	Name  string
	Unit  string
	Value *float64
}

type GetSensorValuesRequest struct {
	ActorRequestMixIn
}

type GetSensorValuesResponse struct {
	ActorResponseMixIn
	Values []SensorValue
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
}

type RefreshDiscoveryRequest struct {
	ActorRequestMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
