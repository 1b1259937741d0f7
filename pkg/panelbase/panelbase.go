// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelbase

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	PanelConfigHomeEnvVar = "ICEWMCP_CONFIG_HOME"
	PanelDataHomeEnvVar   = "ICEWMCP_DATA_HOME"
	PanelDevVarName       = "ICEWMCP_DEV"
)

var ConfigHome_VarCache string // caches ICEWMCP_CONFIG_HOME
var DataHome_VarCache string   // caches ICEWMCP_DATA_HOME
var Dev_VarCache string        // caches ICEWMCP_DEV

const PanelLockFile = "icewmcp.lock"
const PanelDBDir = "db"
const ConnectFileName = "connect.json"
const DotEnvFileName = "icewmcpd.env"

var baseLock = &sync.Mutex{}
var ensureDirCache = map[string]bool{}

type FDLock interface {
	Close() error
}

// LoadDotEnv loads <configdir>/icewmcpd.env before the env cache is taken.
// Real environment variables win over file values.
func LoadDotEnv() error {
	envFile := filepath.Join(configHomeFromEnv(), DotEnvFileName)
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

func CacheAndRemoveEnvVars() {
	ConfigHome_VarCache = configHomeFromEnv()
	os.Unsetenv(PanelConfigHomeEnvVar)
	DataHome_VarCache = dataHomeFromEnv()
	os.Unsetenv(PanelDataHomeEnvVar)
	Dev_VarCache = os.Getenv(PanelDevVarName)
	os.Unsetenv(PanelDevVarName)
}

func configHomeFromEnv() string {
	if dir := os.Getenv(PanelConfigHomeEnvVar); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "icewmcp")
	}
	return filepath.Join(GetHomeDir(), ".config", "icewmcp")
}

func dataHomeFromEnv() string {
	if dir := os.Getenv(PanelDataHomeEnvVar); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "icewmcp")
	}
	return filepath.Join(GetHomeDir(), ".local", "share", "icewmcp")
}

func IsDevMode() bool {
	return Dev_VarCache != ""
}

func GetPanelDataDir() string {
	if DataHome_VarCache == "" {
		return dataHomeFromEnv()
	}
	return DataHome_VarCache
}

func GetPanelConfigDir() string {
	if ConfigHome_VarCache == "" {
		return configHomeFromEnv()
	}
	return ConfigHome_VarCache
}

func GetConnectFilePath() string {
	return filepath.Join(GetPanelDataDir(), ConnectFileName)
}

func GetHomeDir() string {
	homeVar, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return homeVar
}

func ExpandHomeDir(pathStr string) (string, error) {
	if pathStr != "~" && !strings.HasPrefix(pathStr, "~/") {
		return filepath.Clean(pathStr), nil
	}
	homeDir := GetHomeDir()
	if pathStr == "~" {
		return homeDir, nil
	}
	expandedPath := filepath.Clean(filepath.Join(homeDir, pathStr[2:]))
	absPath, err := filepath.Abs(expandedPath)
	if err != nil || !strings.HasPrefix(absPath, homeDir) {
		return "", fmt.Errorf("potential path traversal detected for path %s", pathStr)
	}
	return expandedPath, nil
}

func ExpandHomeDirSafe(pathStr string) string {
	path, _ := ExpandHomeDir(pathStr)
	return path
}

func ReplaceHomeDir(pathStr string) string {
	homeDir := GetHomeDir()
	if pathStr == homeDir {
		return "~"
	}
	if strings.HasPrefix(pathStr, homeDir+"/") {
		return "~" + pathStr[len(homeDir):]
	}
	return pathStr
}

func EnsurePanelDataDir() error {
	return CacheEnsureDir(GetPanelDataDir(), "paneldata", 0700, "panel data directory")
}

func EnsurePanelDBDir() error {
	return CacheEnsureDir(filepath.Join(GetPanelDataDir(), PanelDBDir), "paneldb", 0700, "panel db directory")
}

func EnsurePanelConfigDir() error {
	return CacheEnsureDir(GetPanelConfigDir(), "panelconfig", 0700, "panel config directory")
}

func CacheEnsureDir(dirName string, cacheKey string, perm os.FileMode, dirDesc string) error {
	baseLock.Lock()
	ok := ensureDirCache[cacheKey]
	baseLock.Unlock()
	if ok {
		return nil
	}
	err := TryMkdirs(dirName, perm, dirDesc)
	if err != nil {
		return err
	}
	baseLock.Lock()
	ensureDirCache[cacheKey] = true
	baseLock.Unlock()
	return nil
}

func TryMkdirs(dirName string, perm os.FileMode, dirDesc string) error {
	info, err := os.Stat(dirName)
	if errors.Is(err, fs.ErrNotExist) {
		err = os.MkdirAll(dirName, perm)
		if err != nil {
			return fmt.Errorf("cannot make %s %q: %w", dirDesc, dirName, err)
		}
		info, err = os.Stat(dirName)
	}
	if err != nil {
		return fmt.Errorf("error trying to stat %s: %w", dirDesc, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q must be a directory", dirDesc, dirName)
	}
	return nil
}

func ClientArch() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

// ConnectFile tells local clients where the daemon listens and carries the
// bearer token they must present.  Mode 0600; possession of the file is the
// authorization.
type ConnectFile struct {
	WebAddr string `json:"webaddr"`
	WsAddr  string `json:"wsaddr"`
	Token   string `json:"token"`
}

func WriteConnectFile(cf ConnectFile) error {
	err := EnsurePanelDataDir()
	if err != nil {
		return err
	}
	barr, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal connect file: %w", err)
	}
	fileName := GetConnectFilePath()
	err = os.WriteFile(fileName, append(barr, '\n'), 0600)
	if err != nil {
		return fmt.Errorf("cannot write connect file %q: %w", fileName, err)
	}
	return nil
}

func ReadConnectFile() (*ConnectFile, error) {
	fileName := GetConnectFilePath()
	barr, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("cannot read connect file %q (is icewmcpd running?): %w", fileName, err)
	}
	var cf ConnectFile
	err = json.Unmarshal(barr, &cf)
	if err != nil {
		return nil, fmt.Errorf("cannot parse connect file %q: %w", fileName, err)
	}
	if cf.WebAddr == "" || cf.Token == "" {
		return nil, fmt.Errorf("connect file %q is incomplete", fileName)
	}
	return &cf, nil
}

func RemoveConnectFile() {
	os.Remove(GetConnectFilePath())
}
