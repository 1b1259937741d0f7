// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package service

import (
	"context"
	"fmt"
	"testing"
)

type testArgs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type testService struct{}

func (ts *testService) Add(a int, b int) int {
	return a + b
}

func (ts *testService) Greet(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name")
	}
	return "hello " + name, nil
}

func (ts *testService) Describe(args testArgs) string {
	return fmt.Sprintf("%s x%d", args.Name, args.Count)
}

func withTestService(t *testing.T) {
	t.Helper()
	ServiceMap["testsvc"] = &testService{}
	t.Cleanup(func() {
		delete(ServiceMap, "testsvc")
	})
}

func TestCallServiceBasic(t *testing.T) {
	withTestService(t)
	rtn := CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Add",
		Args:    []any{float64(2), float64(3)},
	})
	if !rtn.Success || rtn.Error != "" {
		t.Fatalf("call failed: %s", rtn.Error)
	}
	if rtn.Data != 5 {
		t.Errorf("data = %v, want 5", rtn.Data)
	}
}

func TestCallServiceContextInjection(t *testing.T) {
	withTestService(t)
	rtn := CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Greet",
		Args:    []any{"icewm"},
	})
	if !rtn.Success {
		t.Fatalf("call failed: %s", rtn.Error)
	}
	if rtn.Data != "hello icewm" {
		t.Errorf("data = %v", rtn.Data)
	}
}

func TestCallServiceErrorReturn(t *testing.T) {
	withTestService(t)
	rtn := CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Greet",
		Args:    []any{""},
	})
	if rtn.Success {
		t.Fatalf("expected failure")
	}
	if rtn.Error != "empty name" {
		t.Errorf("error = %q", rtn.Error)
	}
}

func TestCallServiceStructArg(t *testing.T) {
	withTestService(t)
	rtn := CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Describe",
		Args:    []any{map[string]any{"name": "xterm", "count": float64(3)}},
	})
	if !rtn.Success {
		t.Fatalf("call failed: %s", rtn.Error)
	}
	if rtn.Data != "xterm x3" {
		t.Errorf("data = %v", rtn.Data)
	}
}

func TestCallServiceBadCalls(t *testing.T) {
	withTestService(t)
	rtn := CallService(context.Background(), WebCallType{Service: "nosuch", Method: "Add"})
	if rtn.Success || rtn.Error == "" {
		t.Errorf("expected invalid service error")
	}
	rtn = CallService(context.Background(), WebCallType{Service: "testsvc", Method: "NoSuchMethod"})
	if rtn.Success || rtn.Error == "" {
		t.Errorf("expected invalid method error")
	}
	rtn = CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Add",
		Args:    []any{float64(1)},
	})
	if rtn.Success {
		t.Errorf("expected not-enough-arguments error")
	}
	rtn = CallService(context.Background(), WebCallType{
		Service: "testsvc",
		Method:  "Add",
		Args:    []any{"one", "two"},
	})
	if rtn.Success {
		t.Errorf("expected conversion error")
	}
}

func TestValidateServiceMap(t *testing.T) {
	if err := ValidateServiceMap(); err != nil {
		t.Fatalf("service map invalid: %v", err)
	}
}

type badService struct{}

func (bs *badService) Do(v any) {}

type badReturnService struct{}

func (bs *badReturnService) Get() chan int { return nil }

func TestValidateServiceRejections(t *testing.T) {
	if err := ValidateService("bad", &badService{}); err == nil {
		t.Errorf("expected interface arg rejection")
	}
	if err := ValidateService("badreturn", &badReturnService{}); err == nil {
		t.Errorf("expected chan return rejection")
	}
	if err := ValidateService("notptr", testService{}); err == nil {
		t.Errorf("expected non-pointer rejection")
	}
}
