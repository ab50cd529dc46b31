package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"inventory/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAck struct {
	mock.Mock
}

func (m *mockAck) Ack(multiple bool) error {
	return m.Called(multiple).Error(0)
}

func (m *mockAck) Nack(multiple, requeue bool) error {
	return m.Called(multiple, requeue).Error(0)
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := events.NewEvent(events.ItemCreatedEvent, events.EventVersionV1, events.ItemDeletedPayload{ID: 1}, events.NewHeaders("inventory")).ToJSON()
	require.NoError(t, err)
	return body
}

func TestDispatch_AcksOnSuccess(t *testing.T) {
	ack := new(mockAck)
	ack.On("Ack", false).Return(nil).Once()

	var seen string
	dispatch(context.Background(), eventBody(t), "trace", ack, func(ctx context.Context, e *events.Event) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		seen = e.GetRoutingKey()
		return nil
	})

	assert.Equal(t, "item.created.v1", seen)
	ack.AssertExpectations(t)
}

func TestDispatch_DeadLettersHandlerFailure(t *testing.T) {
	ack := new(mockAck)
	ack.On("Nack", false, false).Return(nil).Once()

	dispatch(context.Background(), eventBody(t), "trace", ack, func(context.Context, *events.Event) error {
		return errors.New("s3 down")
	})

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything)
}

func TestDispatch_DeadLettersMalformedBody(t *testing.T) {
	ack := new(mockAck)
	ack.On("Nack", false, false).Return(nil).Once()

	called := false
	dispatch(context.Background(), []byte("{not json"), "", ack, func(context.Context, *events.Event) error {
		called = true
		return nil
	})

	assert.False(t, called)
	ack.AssertExpectations(t)
}
