// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelps

import (
	"sync"
	"testing"
)

type testClient struct {
	lock     sync.Mutex
	clientId string
	events   []PanelEvent
}

func (tc *testClient) ClientId() string {
	return tc.clientId
}

func (tc *testClient) SendEvent(event PanelEvent) {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	tc.events = append(tc.events, event)
}

func (tc *testClient) numEvents() int {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	return len(tc.events)
}

func makeTestBroker() *BrokerType {
	return &BrokerType{
		Lock:      &sync.Mutex{},
		ClientMap: make(map[string]Client),
		SubMap:    make(map[string]*BrokerSubscription),
	}
}

func TestPublishAllScopes(t *testing.T) {
	broker := makeTestBroker()
	c1 := &testClient{clientId: "c1"}
	c2 := &testClient{clientId: "c2"}
	broker.Subscribe(c1, SubscriptionRequest{Event: Event_PrefsUpdated, AllScopes: true})
	broker.Subscribe(c2, SubscriptionRequest{Event: Event_KeysUpdated, AllScopes: true})
	broker.Publish(PanelEvent{Event: Event_PrefsUpdated, Data: PrefsEventData{FileName: "preferences"}})
	if c1.numEvents() != 1 {
		t.Errorf("c1 should get the event, got %d", c1.numEvents())
	}
	if c2.numEvents() != 0 {
		t.Errorf("c2 subscribed to a different event, got %d", c2.numEvents())
	}
}

func TestPublishScoped(t *testing.T) {
	broker := makeTestBroker()
	c1 := &testClient{clientId: "c1"}
	c2 := &testClient{clientId: "c2"}
	broker.Subscribe(c1, SubscriptionRequest{Event: Event_TrialCountdown, Scopes: []string{"trial-a"}})
	broker.Subscribe(c2, SubscriptionRequest{Event: Event_TrialCountdown, Scopes: []string{"trial-b"}})
	broker.Publish(PanelEvent{Event: Event_TrialCountdown, Scopes: []string{"trial-a"}})
	if c1.numEvents() != 1 || c2.numEvents() != 0 {
		t.Errorf("scoped publish mismatch: c1=%d c2=%d", c1.numEvents(), c2.numEvents())
	}
}

func TestUnsubscribeAll(t *testing.T) {
	broker := makeTestBroker()
	c1 := &testClient{clientId: "c1"}
	broker.Subscribe(c1, SubscriptionRequest{Event: Event_ConfigUpdated, AllScopes: true})
	broker.Subscribe(c1, SubscriptionRequest{Event: Event_KeysUpdated, Scopes: []string{"keys"}})
	broker.UnsubscribeAll(c1)
	broker.Publish(PanelEvent{Event: Event_ConfigUpdated})
	broker.Publish(PanelEvent{Event: Event_KeysUpdated, Scopes: []string{"keys"}})
	if c1.numEvents() != 0 {
		t.Errorf("unsubscribed client still got %d events", c1.numEvents())
	}
	if len(broker.SubMap) != 0 {
		t.Errorf("SubMap should be empty, got %v", broker.SubMap)
	}
}

func TestHasScope(t *testing.T) {
	ev := PanelEvent{Event: Event_XSetApplied, Scopes: []string{"mouse"}}
	if !ev.HasScope("mouse") || ev.HasScope("sound") {
		t.Errorf("HasScope mismatch")
	}
}
