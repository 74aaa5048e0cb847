package actor

import (
	"testing"
	"time"

	"github.com/peddamat/tplink2mqtt/internal/core/domain"
	"github.com/peddamat/tplink2mqtt/internal/util/actorutil"
	"github.com/peddamat/tplink2mqtt/pkg/kasa"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDeviceInfoDeviceActor(t *testing.T) {

	assert := assert.New(t)

	reader, err := kasa.CreateSimulatedPlugReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewDeviceActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDeviceInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceInfoResponse)

	assert.Equal(resp.Info.Alias, "Garage Plug", "Device alias")
	assert.Equal(resp.Info.Model, "HS110(EU)", "Device model")
	assert.Equal(resp.Info.SoftwareVersion, "1.1.0 Build 201016 Rel.175121", "Device version")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetSnapshotDeviceActor(t *testing.T) {

	assert := assert.New(t)

	reader, err := kasa.CreateSimulatedStripReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewDeviceActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetSnapshotRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetSnapshotResponse)

	assert.True(resp.Device.HasEmeter, "Strip has emeter")
	assert.Equal(len(resp.Device.Children), 3, "Strip socket count")
	assert.Equal(resp.Device.Children[0].Alias, "TV", "First socket alias")
	assert.True(*resp.Device.Children[0].Emeter.PowerWatt > 0, "First socket power bounds")

	context.Stop(pid)

	as.Shutdown()
}
