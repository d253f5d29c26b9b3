package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/handler"
	"github.com/gomcpgo/cloud_ai/pkg/types"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) (*CloudAIServer, *client.MockClient) {
	t.Helper()
	mockClient := client.NewMockClient()
	logger := zaptest.NewLogger(t)
	h, err := handler.NewCloudAIHandler(handler.Dependencies{Client: mockClient, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	return &CloudAIServer{handler: h, logger: logger}, mockClient
}

func writeBody(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInvoke_Article(t *testing.T) {
	s, mockClient := newTestServer(t)
	mockClient.SetResponse(types.ModelClaude3Sonnet, []byte(`{"content":[{"type":"text","text":"Title: A"}]}`))

	if err := runInvoke(context.Background(), s, handler.GenerateArticle, writeBody(t, `{"content":"1.\nHello world."}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mockClient.Calls()) != 1 {
		t.Errorf("expected one model call, got %d", len(mockClient.Calls()))
	}
}

func TestRunInvoke_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	if err := runInvoke(context.Background(), s, "unknown", writeBody(t, "{}")); err == nil {
		t.Error("expected unknown handler error")
	}
	if err := runInvoke(context.Background(), s, handler.GenerateArticle, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected missing body file error")
	}

	err := runInvoke(context.Background(), s, handler.GenerateDescription, writeBody(t, ""))
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Errorf("expected status 400 error, got %v", err)
	}
}
