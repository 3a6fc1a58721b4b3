package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	l := StandardLogger()
	if err := l.Init(&Config{Level: "debug", Format: "json", Output: "discard"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", l.GetLevel())
	}

	if err := l.Init(&Config{Level: "nope"}); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestContextFields(t *testing.T) {
	l := StandardLogger()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)

	ctx := WithFields(context.Background(), logrus.Fields{"table": "users"})
	ctx = WithFields(ctx, logrus.Fields{"page": 3})
	FromContext(ctx).Info("fetched")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line not JSON: %v", err)
	}
	if line["table"] != "users" {
		t.Errorf("table field = %v", line["table"])
	}
	if line["page"] != float64(3) {
		t.Errorf("page field = %v", line["page"])
	}
}
