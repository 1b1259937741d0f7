// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package panelmeta holds the loosely typed key/value map used for panel
// settings. Keys are namespaced with ":" (e.g. "panel:port", "trial:timeoutms").
package panelmeta

import "strings"

type MetaMapType map[string]any

func (m MetaMapType) GetString(key string, def string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (m MetaMapType) HasKey(key string) bool {
	_, ok := m[key]
	return ok
}

func (m MetaMapType) GetBool(key string, def bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func (m MetaMapType) GetInt(key string, def int) int {
	if v, ok := m[key]; ok {
		if fval, ok := v.(float64); ok {
			return int(fval)
		}
		if ival, ok := v.(int); ok {
			return ival
		}
	}
	return def
}

func (m MetaMapType) GetFloat(key string, def float64) float64 {
	if v, ok := m[key]; ok {
		if fval, ok := v.(float64); ok {
			return fval
		}
	}
	return def
}

func (m MetaMapType) GetMap(key string) MetaMapType {
	if v, ok := m[key]; ok {
		if mval, ok := v.(map[string]any); ok {
			return MetaMapType(mval)
		}
	}
	return nil
}

func (m MetaMapType) GetArray(key string) []any {
	if v, ok := m[key]; ok {
		if aval, ok := v.([]any); ok {
			return aval
		}
	}
	return nil
}

func (m MetaMapType) GetStringArray(key string) []string {
	arr := m.GetArray(key)
	if len(arr) == 0 {
		return nil
	}
	rtn := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			rtn = append(rtn, s)
		}
	}
	return rtn
}

// MergeMeta merges metaUpdate into meta and returns a fresh map.
// A "section:*" key set to true clears the whole section (including the bare
// "section" key). A nil value deletes the key.
func MergeMeta(meta MetaMapType, metaUpdate MetaMapType) MetaMapType {
	rtn := make(MetaMapType)
	for k, v := range meta {
		rtn[k] = v
	}
	// deal with "section:*" keys
	for k := range metaUpdate {
		if !strings.HasSuffix(k, ":*") {
			continue
		}
		if !metaUpdate.GetBool(k, false) {
			continue
		}
		prefix := strings.TrimSuffix(k, ":*")
		if prefix == "" {
			continue
		}
		// delete "[prefix]" and all keys that start with "[prefix]:"
		prefixColon := prefix + ":"
		for k2 := range rtn {
			if k2 == prefix || strings.HasPrefix(k2, prefixColon) {
				delete(rtn, k2)
			}
		}
	}
	// now deal with regular keys
	for k, v := range metaUpdate {
		if strings.HasSuffix(k, ":*") {
			continue
		}
		if v == nil {
			delete(rtn, k)
			continue
		}
		rtn[k] = v
	}
	return rtn
}
