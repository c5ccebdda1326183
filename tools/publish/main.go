// Command publish injects play-count update events into the crowns stream.
// It is an operational tool for smoke-testing the evaluation worker and for
// replaying missed updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/messaging"
)

func main() {
	natsURL := flag.String("nats", "nats://localhost:4222", "NATS server URL")
	streamName := flag.String("stream", "CROWN_EVENTS", "JetStream stream name")
	communityID := flag.Uint64("community", 0, "community ID (required)")
	artist := flag.String("artist", "", "artist name (required)")
	memberID := flag.Uint64("member", 0, "member ID (required)")
	playCount := flag.Int("plays", 0, "tracked play count for the member")
	count := flag.Int("count", 1, "number of copies of the event to publish")
	flag.Parse()

	if *communityID == 0 || *artist == "" || *memberID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	pub, err := messaging.NewPublisher(messaging.Config{
		URL:            *natsURL,
		StreamName:     *streamName,
		ConnectionName: "crown-publish-tool",
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := 0; i < *count; i++ {
		event := &domain.PlayCountUpdateEvent{
			CommunityID: *communityID,
			ArtistName:  *artist,
			MemberID:    *memberID,
			PlayCount:   *playCount,
			Timestamp:   time.Now().UTC(),
		}
		if err := pub.PublishPlayCountUpdate(ctx, event); err != nil {
			fmt.Fprintf(os.Stderr, "failed to publish event %d: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("published %s (community=%d artist=%q member=%d plays=%d)\n",
			event.EventID, *communityID, *artist, *memberID, *playCount)
	}
}
