// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package xsettings

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTrialKeep(t *testing.T) {
	tm := MakeTrialManager()
	var applied, reverted atomic.Bool
	trialId, err := tm.BeginTrial(context.Background(), "mouse", 30,
		func(ctx context.Context) error { applied.Store(true); return nil },
		func(ctx context.Context) error { reverted.Store(true); return nil })
	if err != nil {
		t.Fatalf("BeginTrial error: %v", err)
	}
	if !applied.Load() {
		t.Errorf("apply should have run")
	}
	if _, ok := tm.PendingTrial("mouse"); !ok {
		t.Errorf("trial should be pending")
	}
	if err = tm.Keep(trialId); err != nil {
		t.Fatalf("Keep error: %v", err)
	}
	if reverted.Load() {
		t.Errorf("kept trial must not revert")
	}
	if _, ok := tm.PendingTrial("mouse"); ok {
		t.Errorf("trial should be resolved")
	}
	if err = tm.Keep(trialId); err == nil {
		t.Errorf("double Keep should fail")
	}
}

func TestTrialRevert(t *testing.T) {
	tm := MakeTrialManager()
	var reverted atomic.Bool
	trialId, err := tm.BeginTrial(context.Background(), "mouse", 30,
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { reverted.Store(true); return nil })
	if err != nil {
		t.Fatalf("BeginTrial error: %v", err)
	}
	if err = tm.Revert(context.Background(), trialId); err != nil {
		t.Fatalf("Revert error: %v", err)
	}
	if !reverted.Load() {
		t.Errorf("revert should have run")
	}
	if _, ok := tm.PendingTrial("mouse"); ok {
		t.Errorf("trial should be resolved")
	}
}

func TestTrialOnePerGroup(t *testing.T) {
	tm := MakeTrialManager()
	noop := func(ctx context.Context) error { return nil }
	trialId, err := tm.BeginTrial(context.Background(), "dpms", 30, noop, noop)
	if err != nil {
		t.Fatalf("BeginTrial error: %v", err)
	}
	if _, err = tm.BeginTrial(context.Background(), "dpms", 30, noop, noop); err == nil {
		t.Errorf("second trial for the same group should fail")
	}
	// other groups are independent
	otherId, err := tm.BeginTrial(context.Background(), "sound", 30, noop, noop)
	if err != nil {
		t.Fatalf("BeginTrial other group error: %v", err)
	}
	tm.Keep(trialId)
	tm.Keep(otherId)
}

func TestTrialTimeoutReverts(t *testing.T) {
	tm := MakeTrialManager()
	var reverted atomic.Bool
	_, err := tm.BeginTrial(context.Background(), "mouse", 1,
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { reverted.Store(true); return nil })
	if err != nil {
		t.Fatalf("BeginTrial error: %v", err)
	}
	deadline := time.Now().Add(4 * time.Second)
	for !reverted.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("trial did not auto-revert")
		}
		time.Sleep(100 * time.Millisecond)
	}
	if _, ok := tm.PendingTrial("mouse"); ok {
		t.Errorf("timed out trial should be resolved")
	}
}

func TestTrialApplyFailure(t *testing.T) {
	tm := MakeTrialManager()
	_, err := tm.BeginTrial(context.Background(), "mouse", 30,
		func(ctx context.Context) error { return context.DeadlineExceeded },
		func(ctx context.Context) error { return nil })
	if err == nil {
		t.Fatalf("BeginTrial should propagate apply failure")
	}
	// group must be free again
	if _, ok := tm.PendingTrial("mouse"); ok {
		t.Errorf("failed trial should not stay pending")
	}
}
