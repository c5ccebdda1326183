package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/mocks"
)

type testWorkerMocks struct {
	ctrl   *gomock.Controller
	engine *mocks.MockEngine
	msg    *mocks.MockJetStreamMessage
}

func setupTestWorker(t *testing.T) (*worker, *testWorkerMocks) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	m := &testWorkerMocks{
		ctrl:   ctrl,
		engine: mocks.NewMockEngine(ctrl),
		msg:    mocks.NewMockJetStreamMessage(ctrl),
	}

	w := &worker{
		engine: m.engine,
		json:   adapter.NewJSON(),
		config: Config{
			StreamName:   "CROWN_EVENTS",
			ConsumerName: "crown-worker",
			MaxDeliver:   3,
		},
	}
	return w, m
}

func eventPayload(t *testing.T, event domain.PlayCountUpdateEvent) []byte {
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestHandleMessageEvaluatesAndAcks(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	payload := eventPayload(t, domain.PlayCountUpdateEvent{
		EventID:     "01JWQZX0000000000000000000",
		CommunityID: 100,
		ArtistName:  "  Nine  Inch Nails ",
		MemberID:    1,
		PlayCount:   42,
		Timestamp:   time.Now(),
	})

	m.msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil)
	m.msg.EXPECT().Data().Return(payload)
	m.engine.EXPECT().
		Evaluate(ctx, uint64(100), domain.ArtistKey("nine inch nails")).
		Return(&domain.EvaluationResult{
			Action:      domain.ActionCreated,
			CommunityID: 100,
			ArtistKey:   "nine inch nails",
			OwnerID:     1,
			PlayCount:   42,
		}, nil)
	m.msg.EXPECT().Ack().Return(nil)

	w.handleMessage(ctx, m.msg)
}

func TestHandleMessageTermsUnparseablePayload(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	m.msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{}, nil)
	m.msg.EXPECT().Data().Return([]byte("not json"))
	m.msg.EXPECT().Term().Return(nil)

	w.handleMessage(context.Background(), m.msg)
}

func TestHandleMessageTermsEmptyArtist(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	payload := eventPayload(t, domain.PlayCountUpdateEvent{
		EventID:     "01JWQZX0000000000000000001",
		CommunityID: 100,
		ArtistName:  "   ",
	})

	m.msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{}, nil)
	m.msg.EXPECT().Data().Return(payload)
	m.msg.EXPECT().Term().Return(nil)

	w.handleMessage(context.Background(), m.msg)
}

func TestHandleMessageAbandonsOnEvaluationFailure(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	payload := eventPayload(t, domain.PlayCountUpdateEvent{
		EventID:     "01JWQZX0000000000000000002",
		CommunityID: 100,
		ArtistName:  "Autechre",
	})

	// An unreachable ranking source abandons the evaluation; the message is
	// acked so it is not redelivered, and the next update reconciles
	m.msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 2}, nil)
	m.msg.EXPECT().Data().Return(payload)
	m.engine.EXPECT().
		Evaluate(ctx, uint64(100), domain.ArtistKey("autechre")).
		Return(nil, domain.ErrRankingUnavailable)
	m.msg.EXPECT().Ack().Return(nil)

	w.handleMessage(ctx, m.msg)
}

func TestHandleMessageProceedsWithoutMetadata(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	payload := eventPayload(t, domain.PlayCountUpdateEvent{
		EventID:     "01JWQZX0000000000000000004",
		CommunityID: 100,
		ArtistName:  "Autechre",
	})

	// A metadata failure loses only the delivery-count log field; the event
	// is still evaluated and acked
	m.msg.EXPECT().Metadata().Return(nil, errors.New("metadata unavailable"))
	m.msg.EXPECT().Data().Return(payload)
	m.engine.EXPECT().
		Evaluate(ctx, uint64(100), domain.ArtistKey("autechre")).
		Return(&domain.EvaluationResult{
			Action:      domain.ActionNone,
			CommunityID: 100,
			ArtistKey:   "autechre",
		}, nil)
	m.msg.EXPECT().Ack().Return(nil)

	w.handleMessage(ctx, m.msg)
}

func TestHandleMessageAcksNoChange(t *testing.T) {
	w, m := setupTestWorker(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	payload := eventPayload(t, domain.PlayCountUpdateEvent{
		EventID:     "01JWQZX0000000000000000003",
		CommunityID: 100,
		ArtistName:  "Autechre",
	})

	m.msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil)
	m.msg.EXPECT().Data().Return(payload)
	m.engine.EXPECT().
		Evaluate(ctx, uint64(100), domain.ArtistKey("autechre")).
		Return(&domain.EvaluationResult{
			Action:      domain.ActionNone,
			CommunityID: 100,
			ArtistKey:   "autechre",
		}, nil)
	m.msg.EXPECT().Ack().Return(nil)

	w.handleMessage(ctx, m.msg)
}
