package broker_test

import (
	"testing"
	"time"

	"github.com/myrjola/spermcourt/internal/broker"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c <-chan string) (string, bool) {
	t.Helper()
	select {
	case msg, ok := <-c:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return "", false
	}
}

func TestBroker(t *testing.T) {
	type testCase struct {
		name     string
		testFunc func(t *testing.T, b *broker.Broker[string, string])
	}
	tests := []testCase{
		{
			name: "subscribers receive published payloads",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				first, unsubscribeFirst := b.Subscribe("room")
				defer unsubscribeFirst()
				second, unsubscribeSecond := b.Subscribe("room")
				defer unsubscribeSecond()

				b.Publish("room", "objection")
				msg, ok := receive(t, first)
				require.True(t, ok)
				require.Equal(t, "objection", msg)
				msg, ok = receive(t, second)
				require.True(t, ok)
				require.Equal(t, "objection", msg)
			},
		},
		{
			name: "new subscriber gets the latest payload",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				b.Publish("room", "case 1")
				b.Publish("room", "case 2")
				c, unsubscribe := b.Subscribe("room")
				defer unsubscribe()
				msg, _ := receive(t, c)
				require.Equal(t, "case 2", msg)
			},
		},
		{
			name: "slow subscriber only sees the latest payload",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				c, unsubscribe := b.Subscribe("room")
				defer unsubscribe()
				for _, msg := range []string{"a", "b", "c"} {
					b.Publish("room", msg)
				}
				// Publish is synchronous with the broker loop, so a new subscription is handled after the deliveries.
				_, sync := b.Subscribe("other")
				sync()
				msg, _ := receive(t, c)
				require.Equal(t, "c", msg)
				select {
				case extra := <-c:
					t.Fatalf("unexpected stale payload %q", extra)
				default:
				}
			},
		},
		{
			name: "topics are isolated",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				c, unsubscribe := b.Subscribe("room-a")
				defer unsubscribe()
				b.Publish("room-b", "not yours")
				b.Publish("room-a", "yours")
				msg, _ := receive(t, c)
				require.Equal(t, "yours", msg)
			},
		},
		{
			name: "unsubscribe closes the channel",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				c, unsubscribe := b.Subscribe("room")
				unsubscribe()
				unsubscribe()
				_, ok := receive(t, c)
				require.False(t, ok, "channel not closed")
			},
		},
		{
			name: "unpublish closes subscribers",
			testFunc: func(t *testing.T, b *broker.Broker[string, string]) {
				b.Publish("room", "verdict")
				c, unsubscribe := b.Subscribe("room")
				msg, _ := receive(t, c)
				require.Equal(t, "verdict", msg)
				b.Unpublish("room")
				_, ok := receive(t, c)
				require.False(t, ok, "channel not closed on unpublish")
				unsubscribe()

				late, unsubscribeLate := b.Subscribe("room")
				defer unsubscribeLate()
				select {
				case msg := <-late:
					t.Fatalf("unpublished payload %q delivered", msg)
				case <-time.After(10 * time.Millisecond):
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := broker.New[string, string]()
			go br.Start()
			t.Cleanup(func() {
				br.Stop()
			})
			tt.testFunc(t, br)
		})
	}
}

func TestBrokerStop(t *testing.T) {
	br := broker.New[string, int]()
	done := make(chan struct{})
	go func() {
		br.Start()
		close(done)
	}()
	c, unsubscribe := br.Subscribe("room")
	br.Stop()
	<-done

	_, ok := <-c
	require.False(t, ok, "subscriber channel not closed on stop")
	unsubscribe()
	br.Publish("room", 1)
	late, _ := br.Subscribe("room")
	_, ok = <-late
	require.False(t, ok)
}
