package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/leaveflow/internal/core/events"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the in-process event bus by publishing sample leave events`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a sample event",
	Long:      `Publish a sample leave.submitted or leave.reviewed event to a bus wired with the server's log subscriber`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{events.EventTypeLeaveSubmitted, events.EventTypeLeaveReviewed},
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(cmd.Context(), args[0])
	},
}

var eventDecision string

func publishSampleEvent(ctx context.Context, eventType string) error {
	_, lg, err := setup()
	if err != nil {
		return err
	}

	eventBus := events.NewEventBus(lg)
	eventBus.Subscribe(events.EventTypeLeaveSubmitted, events.LogHandler(lg))
	eventBus.Subscribe(events.EventTypeLeaveReviewed, events.LogHandler(lg))

	var event events.Event
	now := time.Now().UTC()
	switch eventType {
	case events.EventTypeLeaveSubmitted:
		event = events.NewLeaveSubmittedEvent(uuid.New(), uuid.New(), now, now.AddDate(0, 0, 2))
	case events.EventTypeLeaveReviewed:
		event = events.NewLeaveReviewedEvent(uuid.New(), uuid.New(), eventDecision, now)
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	if err := eventBus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	lg.Info("sample event published", "event_type", eventType, "event_id", event.EventID())
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventDecision, "decision", "Approved", "Decision carried by a leave.reviewed event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
