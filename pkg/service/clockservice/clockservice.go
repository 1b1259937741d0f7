// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package clockservice administers the system clock and timezone through
// timedatectl.  These operations usually need polkit authorization or root.
package clockservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/timezone"
)

type ClockService struct{}

// ListZones returns every zone name in the zoneinfo database, sorted.
func (cs *ClockService) ListZones() ([]string, error) {
	return timezone.ListZones()
}

// GetStatus returns the current zone, local time, and NTP state.
func (cs *ClockService) GetStatus(ctx context.Context) (*timezone.ClockStatus, error) {
	return timezone.NewClock().Status(ctx)
}

// SetZone changes the system timezone.
func (cs *ClockService) SetZone(ctx context.Context, zone string) error {
	if err := timezone.NewClock().SetZone(ctx, zone); err != nil {
		return err
	}
	cs.recordChange(ctx, fmt.Sprintf("timezone set to %s", zone))
	return nil
}

// SetNTP enables or disables NTP time synchronization.
func (cs *ClockService) SetNTP(ctx context.Context, enabled bool) error {
	if err := timezone.NewClock().SetNTP(ctx, enabled); err != nil {
		return err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	cs.recordChange(ctx, fmt.Sprintf("ntp sync %s", state))
	return nil
}

// SetTime sets the clock manually; timeStr is "YYYY-MM-DD HH:MM:SS".
// Refused while NTP sync is active, which would snap the clock right back.
func (cs *ClockService) SetTime(ctx context.Context, timeStr string) error {
	clock := timezone.NewClock()
	status, err := clock.Status(ctx)
	if err == nil && status.NTPActive {
		return fmt.Errorf("ntp sync is active, disable it before setting the time manually")
	}
	if err := clock.SetTime(ctx, timeStr); err != nil {
		return err
	}
	cs.recordChange(ctx, fmt.Sprintf("clock set to %s", timeStr))
	return nil
}

func (cs *ClockService) recordChange(ctx context.Context, summary string) {
	if err := history.RecordChange(ctx, "clock", summary, nil); err != nil {
		log.Printf("error recording clock change: %v\n", err)
	}
}
