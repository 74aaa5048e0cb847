package actor

import (
	"fmt"
	"time"

	"github.com/peddamat/tplink2mqtt/internal/config"
	"github.com/peddamat/tplink2mqtt/internal/core/domain"
	"github.com/peddamat/tplink2mqtt/internal/core/events"
	. "github.com/peddamat/tplink2mqtt/internal/util/actorutil"
	"github.com/peddamat/tplink2mqtt/pkg/kasa"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// PollerActor polls the device actor for snapshots, keeps the sensor
// entity set built from the first snapshot and publishes value update
// events to the event stream on every poll.
type PollerActor struct {
	ActorWithStates
	scheduler *scheduler.TimerScheduler
	stash     *Stash

	deviceActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream

	info     *kasa.DeviceInfo
	entities []*events.SmartPlugSensor

	logger *zap.Logger
}

type pollTick struct {
}

func NewPollerActor(config *config.Config, deviceActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:      config,
		deviceActor: deviceActor,
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream: eventStream,
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(PollerStartingState{
		actor: act,
	})
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type PollerStartingState struct {
	ActorState
	actor *PollerActor
}

func (state PollerStartingState) Name() string {
	return "starting"
}

func (state PollerStartingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.actor.logger.Debug("poller@starting started")

		state.actor.scheduler = scheduler.NewTimerScheduler(ctx)

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.deviceActor, domain.GetDeviceInfoRequest{}, 1*time.Second), func(err error) any {
			return domain.GetDeviceInfoResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.actor.Become(PollerWaitingInfoState{
			actor: state.actor,
		})
	case *actor.Restarting:
	default:
		state.actor.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting info state

type PollerWaitingInfoState struct {
	ActorState
	actor *PollerActor
}

func (state PollerWaitingInfoState) Name() string {
	return "waitingInfo"
}

func (state PollerWaitingInfoState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDeviceInfoResponse:
		if msg.HasResponseError() {
			state.actor.logger.Error("poller@waitingInfo GetDeviceInfoResponse error", zap.Error(msg.GetResponseError()))
			panic(msg.GetResponseError())
		}
		state.actor.logger.Debug("poller@waitingInfo GetDeviceInfoResponse")
		state.actor.info = msg.Info

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.deviceActor, domain.GetSnapshotRequest{}, 1*time.Second), func(err error) any {
			return domain.GetSnapshotResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.actor.Become(PollerWaitingFirstSnapshotState{
			actor: state.actor,
		})
	default:
		state.actor.logger.Debug("poller@waitingInfo: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting first snapshot state. The entity set is built once here, a
// reading absent from the first snapshot never becomes an entity.

type PollerWaitingFirstSnapshotState struct {
	ActorState
	actor *PollerActor
}

func (state PollerWaitingFirstSnapshotState) Name() string {
	return "waitingFirstSnapshot"
}

func (state PollerWaitingFirstSnapshotState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetSnapshotResponse:
		if msg.HasResponseError() {
			state.actor.logger.Error("poller@waitingFirstSnapshot GetSnapshotResponse error", zap.Error(msg.GetResponseError()))
			panic(msg.GetResponseError())
		}
		state.actor.logger.Debug("poller@waitingFirstSnapshot GetSnapshotResponse")

		state.actor.entities = events.SensorsForSnapshot(msg.Device)
		state.actor.logger.Sugar().Infof("monitoring %d sensors on %s", len(state.actor.entities), msg.Device.Alias)
		state.actor.publishUpdateEvents()

		if state.actor.config.MonitorConfig.PollIntervalMillis > 0 {
			state.actor.scheduler.RequestOnce(time.Duration(state.actor.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		}
		state.actor.Become(PollerIdleState{
			actor: state.actor,
		})
		state.actor.stash.UnstashAll(ctx)
	default:
		state.actor.logger.Debug("poller@waitingFirstSnapshot: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Idle state

type PollerIdleState struct {
	ActorState
	actor *PollerActor
}

func (state PollerIdleState) Name() string {
	return "idle"
}

func (state PollerIdleState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.actor.logger.Debug("poller@idle: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   state.Name(),
		})
	case pollTick:
		state.actor.logger.Debug("poller@idle tick")

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.deviceActor, domain.GetSnapshotRequest{}, 1*time.Second), func(err error) any {
			return domain.GetSnapshotResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		// schedule next tick
		state.actor.scheduler.RequestOnce(time.Duration(state.actor.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		state.actor.BecomeStacked(PollerWaitingSnapshotState{
			actor: state.actor,
		})
	case domain.GetSensorEntitiesRequest:
		state.actor.logger.Debug("poller@idle: GetSensorEntitiesRequest")
		bridgeDevice := domain.BridgeDevice(state.actor.config.MQTT.BaseTopic)
		ctx.Respond(domain.GetSensorEntitiesResponse{
			Sensors: events.GenericSensorsForEntities(state.actor.info, state.actor.entities, bridgeDevice.Id),
		})
	case domain.GetSensorValuesRequest:
		state.actor.logger.Debug("poller@idle: GetSensorValuesRequest")
		ctx.Respond(domain.GetSensorValuesResponse{
			Values: events.SensorValues(state.actor.entities),
		})
	default:
		state.actor.logger.Debug("poller@idle: recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// Waiting snapshot state

type PollerWaitingSnapshotState struct {
	ActorState
	actor *PollerActor
}

func (state PollerWaitingSnapshotState) Name() string {
	return "polling"
}

func (state PollerWaitingSnapshotState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.actor.logger.Debug("poller@polling: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   state.Name(),
		})
	case domain.GetSnapshotResponse:
		if msg.HasResponseError() {
			// skip this cycle, sensors keep their last published value
			state.actor.logger.Error("poller@polling GetSnapshotResponse error", zap.Error(msg.GetResponseError()))
			state.actor.UnbecomeStacked()
			state.actor.stash.UnstashAll(ctx)
			return
		}
		state.actor.logger.Debug("poller@polling GetSnapshotResponse")

		state.actor.rebindEntities(msg.Device)
		state.actor.publishUpdateEvents()

		state.actor.UnbecomeStacked()
		state.actor.stash.UnstashAll(ctx)
	default:
		state.actor.logger.Debug("poller@polling: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

func (act *PollerActor) publishUpdateEvents() {
	evs := events.SensorUpdateEvents(act.entities)
	for _, ev := range evs {
		act.eventStream.Publish(ev)
	}
}

// rebindEntities points the entity set at a fresh snapshot. An entity
// whose device is missing from the snapshot keeps the previous one.
func (act *PollerActor) rebindEntities(parent *kasa.Device) {
	byId := make(map[string]*kasa.Device)
	byId[parent.DeviceID] = parent
	for _, child := range parent.Children {
		byId[child.DeviceID] = child
	}
	for _, entity := range act.entities {
		if device, ok := byId[entity.Device().DeviceID]; ok {
			entity.Rebind(device)
		}
	}
}
