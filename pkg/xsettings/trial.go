// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package xsettings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/util/ds"
)

// A trial applies a risky setting (pointer speed can make the mouse unusable)
// and reverts it automatically unless the user confirms within the countdown.

const DefaultTrialSeconds = 7

type Trial struct {
	TrialId  string
	Group    string
	Deadline time.Time
	revert   func(ctx context.Context) error
	stopCh   chan bool
	stopOnce *sync.Once
}

func (t *Trial) stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

type TrialManager struct {
	lock        sync.Mutex
	trials      *ds.ExpMap[*Trial]
	activeGroup map[string]string // group => trialid
}

func MakeTrialManager() *TrialManager {
	return &TrialManager{
		trials:      ds.MakeExpMap[*Trial](),
		activeGroup: make(map[string]string),
	}
}

// BeginTrial runs apply and schedules revert to fire in countdownSec seconds
// unless Keep or Revert resolves the trial first. One trial per group.
func (tm *TrialManager) BeginTrial(ctx context.Context, group string, countdownSec int,
	apply func(ctx context.Context) error, revert func(ctx context.Context) error) (string, error) {
	if countdownSec <= 0 {
		countdownSec = DefaultTrialSeconds
	}
	tm.lock.Lock()
	if trialId, ok := tm.activeGroup[group]; ok {
		tm.lock.Unlock()
		return "", fmt.Errorf("a trial for %s is already pending (%s)", group, trialId)
	}
	trialId := uuid.New().String()
	tm.activeGroup[group] = trialId
	tm.lock.Unlock()

	err := apply(ctx)
	if err != nil {
		tm.lock.Lock()
		delete(tm.activeGroup, group)
		tm.lock.Unlock()
		return "", err
	}
	trial := &Trial{
		TrialId:  trialId,
		Group:    group,
		Deadline: time.Now().Add(time.Duration(countdownSec) * time.Second),
		revert:   revert,
		stopCh:   make(chan bool),
		stopOnce: &sync.Once{},
	}
	tm.trials.Set(trialId, trial, trial.Deadline.Add(10*time.Second))
	go tm.runCountdown(trial)
	return trialId, nil
}

func (tm *TrialManager) runCountdown(trial *Trial) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-trial.stopCh:
			return
		case <-ticker.C:
			secondsLeft := int(time.Until(trial.Deadline).Round(time.Second).Seconds())
			if secondsLeft > 0 {
				panelps.Broker.Publish(panelps.PanelEvent{
					Event:  panelps.Event_TrialCountdown,
					Scopes: []string{trial.TrialId},
					Data: panelps.TrialCountdownData{
						TrialId:     trial.TrialId,
						Group:       trial.Group,
						SecondsLeft: secondsLeft,
					},
				})
				continue
			}
			// timed out, revert
			ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
			tm.resolve(ctx, trial, false, true)
			cancelFn()
			return
		}
	}
}

// Keep confirms the trial; the applied settings stay.
func (tm *TrialManager) Keep(trialId string) error {
	trial, ok := tm.trials.Get(trialId)
	if !ok {
		return fmt.Errorf("no pending trial %s", trialId)
	}
	trial.stop()
	tm.remove(trial)
	panelps.Broker.Publish(panelps.PanelEvent{
		Event:  panelps.Event_TrialResolved,
		Scopes: []string{trial.TrialId},
		Data:   panelps.TrialResolvedData{TrialId: trial.TrialId, Group: trial.Group, Kept: true},
	})
	return nil
}

// Revert cancels the trial and restores the previous settings immediately.
func (tm *TrialManager) Revert(ctx context.Context, trialId string) error {
	trial, ok := tm.trials.Get(trialId)
	if !ok {
		return fmt.Errorf("no pending trial %s", trialId)
	}
	trial.stop()
	return tm.resolve(ctx, trial, false, false)
}

// PendingTrial returns the pending trial id for group, if any.
func (tm *TrialManager) PendingTrial(group string) (string, bool) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	trialId, ok := tm.activeGroup[group]
	return trialId, ok
}

func (tm *TrialManager) remove(trial *Trial) {
	tm.trials.Delete(trial.TrialId)
	tm.lock.Lock()
	if tm.activeGroup[trial.Group] == trial.TrialId {
		delete(tm.activeGroup, trial.Group)
	}
	tm.lock.Unlock()
}

func (tm *TrialManager) resolve(ctx context.Context, trial *Trial, kept bool, timedOut bool) error {
	tm.remove(trial)
	var revertErr error
	if !kept && trial.revert != nil {
		revertErr = trial.revert(ctx)
	}
	panelps.Broker.Publish(panelps.PanelEvent{
		Event:  panelps.Event_TrialResolved,
		Scopes: []string{trial.TrialId},
		Data:   panelps.TrialResolvedData{TrialId: trial.TrialId, Group: trial.Group, Kept: kept, TimedOut: timedOut},
	})
	return revertErr
}
