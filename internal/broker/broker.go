// Package broker fans out the latest state of a topic to its subscribers.
package broker

import "sync"

type subscription[TID comparable, TPayload any] struct {
	id      TID
	channel chan TPayload
}

type publication[TID comparable, TPayload any] struct {
	id      TID
	payload TPayload
}

// Broker delivers published payloads to every subscriber of a topic ID.
//
// Subscribers only care about the latest state, so a slow subscriber never blocks the publisher: an undelivered
// payload is replaced by the newer one. A new subscriber receives the last payload published to its topic right away.
//
// This is what the courtroom streams over SSE. The producer is the room, which publishes a snapshot after every
// transition, and each open event stream of the player is a consumer.
type Broker[TID comparable, TPayload any] struct {
	stopChannel        chan struct{}
	publishChannel     chan publication[TID, TPayload]
	unpublishChannel   chan TID
	subscribeChannel   chan subscription[TID, TPayload]
	unsubscribeChannel chan subscription[TID, TPayload]
}

// New creates a Broker. Run Start in a goroutine before use and Stop it when done.
func New[TID comparable, TPayload any]() *Broker[TID, TPayload] {
	return &Broker[TID, TPayload]{
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan publication[TID, TPayload]),
		unpublishChannel:   make(chan TID),
		subscribeChannel:   make(chan subscription[TID, TPayload]),
		unsubscribeChannel: make(chan subscription[TID, TPayload]),
	}
}

// Start listening for publish, unpublish, subscribe, and unsubscribe events. This function blocks until Stop() is
// called, so it should be called in a goroutine. All subscriber channels are closed when it returns.
func (b *Broker[TID, TPayload]) Start() {
	latest := map[TID]TPayload{}
	subscribers := map[TID]map[chan TPayload]struct{}{}
	defer func() {
		for _, set := range subscribers {
			for c := range set {
				close(c)
			}
		}
	}()
	for {
		select {
		case <-b.stopChannel:
			return

		case sub := <-b.subscribeChannel:
			set := subscribers[sub.id]
			if set == nil {
				set = map[chan TPayload]struct{}{}
				subscribers[sub.id] = set
			}
			set[sub.channel] = struct{}{}
			if payload, ok := latest[sub.id]; ok {
				sub.channel <- payload
			}

		case sub := <-b.unsubscribeChannel:
			set := subscribers[sub.id]
			if _, ok := set[sub.channel]; !ok {
				// Already closed by Unpublish.
				break
			}
			delete(set, sub.channel)
			close(sub.channel)
			if len(set) == 0 {
				delete(subscribers, sub.id)
			}

		case pub := <-b.publishChannel:
			latest[pub.id] = pub.payload
			for c := range subscribers[pub.id] {
				deliverLatest(c, pub.payload)
			}

		case id := <-b.unpublishChannel:
			for c := range subscribers[id] {
				close(c)
			}
			delete(subscribers, id)
			delete(latest, id)
		}
	}
}

// deliverLatest sends payload to c, replacing a payload the subscriber has not received yet.
func deliverLatest[TPayload any](c chan TPayload, payload TPayload) {
	select {
	case c <- payload:
		return
	default:
	}
	select {
	case <-c:
	default:
	}
	select {
	case c <- payload:
	default:
	}
}

// Stop the goroutine that handles the broker.
func (b *Broker[TID, TPayload]) Stop() {
	close(b.stopChannel)
}

// Subscribe to the topic with ID. The returned channel receives payloads until unsubscribe is called, the topic is
// unpublished, or the broker stops, at which point it is closed. unsubscribe may be called more than once.
func (b *Broker[TID, TPayload]) Subscribe(id TID) (<-chan TPayload, func()) {
	sub := subscription[TID, TPayload]{id: id, channel: make(chan TPayload, 1)}
	select {
	case b.subscribeChannel <- sub:
	case <-b.stopChannel:
		close(sub.channel)
		return sub.channel, func() {}
	}
	var once sync.Once
	return sub.channel, func() {
		once.Do(func() {
			select {
			case b.unsubscribeChannel <- sub:
			case <-b.stopChannel:
			}
		})
	}
}

// Publish payload to the subscribers of the topic with ID. It does not wait for the subscribers to receive it.
func (b *Broker[TID, TPayload]) Publish(id TID, payload TPayload) {
	select {
	case b.publishChannel <- publication[TID, TPayload]{id: id, payload: payload}:
	case <-b.stopChannel:
	}
}

// Unpublish the topic with ID, closing the channels of its subscribers and forgetting its latest payload.
func (b *Broker[TID, TPayload]) Unpublish(id TID) {
	select {
	case b.unpublishChannel <- id:
	case <-b.stopChannel:
	}
}
