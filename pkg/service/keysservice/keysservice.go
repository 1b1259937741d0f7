// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package keysservice edits the IceWM keys file (custom keyboard
// shortcuts).  IceWM only rereads the file on restart, so clients surface
// that after a change.
package keysservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/tools"
)

type KeysService struct{}

// ListBindings returns the user's custom shortcuts sorted by combo.
func (ks *KeysService) ListBindings(ctx context.Context) ([]icewm.KeyBinding, error) {
	bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
	if err != nil {
		return nil, fmt.Errorf("error loading keys file: %w", err)
	}
	return bindings, nil
}

// SetBinding adds a shortcut or replaces the command of an existing combo.
func (ks *KeysService) SetBinding(ctx context.Context, combo string, command string) error {
	if err := icewm.ValidateKeyCombo(combo); err != nil {
		return err
	}
	if command == "" {
		return fmt.Errorf("empty command for key %q", combo)
	}
	combo = icewm.NormalizeKeyCombo(combo)
	bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
	if err != nil {
		return fmt.Errorf("error loading keys file: %w", err)
	}
	idx := icewm.FindBinding(bindings, combo)
	if idx >= 0 {
		if bindings[idx].Combo == combo && bindings[idx].Command == command {
			return nil
		}
		bindings[idx].Combo = combo
		bindings[idx].Command = command
	} else {
		bindings = append(bindings, icewm.KeyBinding{Combo: combo, Command: command})
	}
	if err := icewm.SaveKeysFile(icewm.UserKeysFile(), bindings); err != nil {
		return err
	}
	if err := history.RecordChange(ctx, "keys", fmt.Sprintf("bound %s to %s", combo, command), nil); err != nil {
		log.Printf("error recording keys change: %v\n", err)
	}
	publishKeysUpdated([]string{combo})
	return nil
}

// RemoveBinding deletes a shortcut.
func (ks *KeysService) RemoveBinding(ctx context.Context, combo string) error {
	combo = icewm.NormalizeKeyCombo(combo)
	bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
	if err != nil {
		return fmt.Errorf("error loading keys file: %w", err)
	}
	idx := icewm.FindBinding(bindings, combo)
	if idx < 0 {
		return fmt.Errorf("no binding for %q", combo)
	}
	bindings = append(bindings[:idx], bindings[idx+1:]...)
	if err := icewm.SaveKeysFile(icewm.UserKeysFile(), bindings); err != nil {
		return err
	}
	if err := history.RecordChange(ctx, "keys", fmt.Sprintf("removed binding %s", combo), nil); err != nil {
		log.Printf("error recording keys change: %v\n", err)
	}
	publishKeysUpdated([]string{combo})
	return nil
}

// RunBinding executes the command bound to combo, the way IceWM would when
// the shortcut fires, and returns the detached pid.
func (ks *KeysService) RunBinding(ctx context.Context, combo string) (int, error) {
	bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
	if err != nil {
		return 0, fmt.Errorf("error loading keys file: %w", err)
	}
	idx := icewm.FindBinding(bindings, combo)
	if idx < 0 {
		return 0, fmt.Errorf("no binding for %q", combo)
	}
	return tools.RunCommand(bindings[idx].Command)
}

func publishKeysUpdated(keys []string) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_KeysUpdated,
		Data:  panelps.PrefsEventData{FileName: icewm.KeysFileName, Keys: keys},
	})
}
