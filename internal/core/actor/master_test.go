package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "github.com/peddamat/tplink2mqtt/internal/adapter/actor"
	"github.com/peddamat/tplink2mqtt/internal/core/domain"
	"github.com/peddamat/tplink2mqtt/internal/util"
	"github.com/peddamat/tplink2mqtt/pkg/kasa"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.DeviceActor {
			return adactor.NewDeviceActor(kasa.SimulatedPlugReader{}, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorSensorValues(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.DeviceActor {
			return adactor.NewDeviceActor(kasa.SimulatedStripReader{}, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.GetSensorValuesRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	valuesResp, ok := res.(domain.GetSensorValuesResponse)
	assert.True(t, ok)

	// 3 strip sockets with 5 sensors each
	assert.Equal(t, 15, len(valuesResp.Values), "sensor value count")

	byId := make(map[string]domain.SensorValue)
	for _, value := range valuesResp.Values {
		byId[value.Id] = value
	}
	tvPower, ok := byId["00_current_power_w"]
	assert.True(t, ok)
	assert.Equal(t, "TV Current Consumption", tvPower.Name, "sensor name")
	assert.Equal(t, "W", tvPower.Unit, "sensor unit")
	if assert.NotNil(t, tvPower.Value) {
		assert.Equal(t, 87.3, *tvPower.Value, "sensor value")
	}

	context.Stop(pid)

	as.Shutdown()
}
