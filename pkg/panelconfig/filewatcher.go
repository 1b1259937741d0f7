// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelconfig

import (
	"log"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/panelps"
)

var instance *Watcher
var once sync.Once

// Watcher watches the panel config dir and the IceWM user config dir.
// Changes to settings.json re-read the full config; changes to the IceWM
// preferences, keys, or theme files publish the matching events so clients
// see edits made behind the daemon's back (a text editor, icewm itself).
type Watcher struct {
	initialized bool
	watcher     *fsnotify.Watcher
	mutex       sync.Mutex
	fullConfig  FullConfigType
}

type WatcherUpdate struct {
	FullConfig FullConfigType `json:"fullconfig"`
}

// GetWatcher returns the singleton instance of the Watcher
func GetWatcher() *Watcher {
	once.Do(func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Printf("failed to create file watcher: %v", err)
			return
		}
		instance = &Watcher{watcher: watcher}
		configDir := panelbase.GetPanelConfigDir()
		if err := instance.watcher.Add(configDir); err != nil {
			log.Printf("failed to add path %s to watcher: %v", configDir, err)
		}
		icewmDir := icewm.UserConfigDir()
		if err := instance.watcher.Add(icewmDir); err != nil {
			log.Printf("failed to add path %s to watcher: %v", icewmDir, err)
		}
	})
	return instance
}

func (w *Watcher) Start() {
	if w == nil {
		return
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()

	log.Printf("starting file watcher\n")
	w.initialized = true
	w.sendInitialValues()

	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handleEvent(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Println("watcher error:", err)
			}
		}
	}()
}

func (w *Watcher) sendInitialValues() {
	w.fullConfig = ReadFullConfig()
	w.broadcast(WatcherUpdate{FullConfig: w.fullConfig})
}

func (w *Watcher) Close() {
	if w == nil {
		return
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
		log.Println("file watcher closed")
	}
}

func (w *Watcher) broadcast(message WatcherUpdate) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_ConfigUpdated,
		Data:  message,
	})
}

// GetFullConfig returns the current merged config.
func (w *Watcher) GetFullConfig() FullConfigType {
	if w == nil {
		return ReadFullConfig()
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.initialized {
		w.fullConfig = ReadFullConfig()
		w.initialized = true
	}
	return w.fullConfig
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	fileName := filepath.ToSlash(event.Name)
	if event.Op == fsnotify.Chmod {
		return
	}
	if filepath.Dir(fileName) == filepath.ToSlash(icewm.UserConfigDir()) {
		w.handleIceWMFileEvent(fileName)
		return
	}
	if !isValidSettingsFileName(fileName) {
		return
	}
	w.handleSettingsFileEvent(fileName)
}

var validFileRe = regexp.MustCompile(`^[a-zA-Z0-9_@.-]+\.json$`)

func isValidSettingsFileName(fileName string) bool {
	if filepath.Ext(fileName) != ".json" {
		return false
	}
	baseName := filepath.Base(fileName)
	return validFileRe.MatchString(baseName)
}

func (w *Watcher) handleSettingsFileEvent(fileName string) {
	w.fullConfig = ReadFullConfig()
	w.broadcast(WatcherUpdate{FullConfig: w.fullConfig})
}

func (w *Watcher) handleIceWMFileEvent(fileName string) {
	switch filepath.Base(fileName) {
	case icewm.PrefsFileName:
		panelps.Broker.Publish(panelps.PanelEvent{
			Event: panelps.Event_PrefsUpdated,
			Data:  panelps.PrefsEventData{FileName: icewm.PrefsFileName},
		})
	case icewm.KeysFileName:
		panelps.Broker.Publish(panelps.PanelEvent{
			Event: panelps.Event_KeysUpdated,
			Data:  panelps.PrefsEventData{FileName: icewm.KeysFileName},
		})
	case icewm.ThemeFileName:
		themeName, err := icewm.CurrentTheme()
		if err != nil {
			themeName = ""
		}
		panelps.Broker.Publish(panelps.PanelEvent{
			Event: panelps.Event_ThemeChanged,
			Data:  map[string]any{"theme": themeName},
		})
	}
}
