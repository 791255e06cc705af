package notifier

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisNotifier(t *testing.T) {
	ctx := context.Background()
	n := NewRedisNotifier(ctx, "localhost:6379", 0, "test_scraper_runs", 100)
	defer n.Close()

	// Create a reader to verify the message was appended
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	_, err := client.Ping(ctx).Result()
	if err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	err = client.XGroupCreateMkStream(ctx, "test_scraper_runs", "test_group", "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		panic(err)
	}

	messages := make(chan string, 1)

	go func() {
		message, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Streams:  []string{"test_scraper_runs", ">"},
			Group:    "test_group",
			Consumer: "test_consumer",
			Block:    0,
		}).Result()
		assert.NoError(t, err)
		messages <- message[0].Messages[0].Values["message"].(string)
	}()

	time.Sleep(100 * time.Millisecond)

	err = n.Notify("2 products scraped and updated.")
	assert.NoError(t, err)

	select {
	case msg := <-messages:
		assert.Equal(t, "2 products scraped and updated.", msg)
	case <-time.After(1 * time.Second):
		t.Error("Timed out waiting for message")
	}
}

func TestRedisNotifierKeepsRunOrder(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	const stream = "test_scraper_run_order"
	client.Del(ctx, stream)
	defer client.Del(ctx, stream)

	n := NewRedisNotifier(ctx, "localhost:6379", 0, stream, 100)
	defer n.Close()

	// One notification per scrape run, in run order
	for _, count := range []int{3, 0, 1} {
		err := n.Notify(fmt.Sprintf("%d products scraped and updated.", count))
		assert.NoError(t, err)
	}

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	assert.NoError(t, err)
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "3 products scraped and updated.", entries[0].Values["message"])
		assert.Equal(t, "0 products scraped and updated.", entries[1].Values["message"])
		assert.Equal(t, "1 products scraped and updated.", entries[2].Values["message"])
	}
}
