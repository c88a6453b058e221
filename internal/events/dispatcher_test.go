package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversInRegistrationOrder(t *testing.T) {
	d := NewInMemoryDispatcher()

	var order []string
	d.Subscribe(EventIssueCreated, func(context.Context, Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(EventIssueCreated, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueCreated}))
	require.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	delivered := false
	d.Subscribe(EventIssueDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventIssueDeleted, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueDeleted}))
	require.True(t, delivered)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRegistered}))
}
