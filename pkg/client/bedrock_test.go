package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap/zaptest"
)

type fakeRuntime struct {
	input *bedrockruntime.InvokeModelInput
	body  []byte
	err   error
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.body}, nil
}

func TestBedrockClient_InvokeModel_SendsJSONRequest(t *testing.T) {
	fake := &fakeRuntime{body: []byte(`{"content":[{"type":"text","text":"hi"}]}`)}
	c := NewBedrockClientWithAPI(fake, zaptest.NewLogger(t))

	resp, err := c.InvokeModel(context.Background(), "anthropic.claude-3-sonnet-20240229-v1:0", []byte(`{"max_tokens":10}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(resp) != string(fake.body) {
		t.Errorf("expected raw response body, got %s", resp)
	}
	if aws.ToString(fake.input.ModelId) != "anthropic.claude-3-sonnet-20240229-v1:0" {
		t.Errorf("unexpected model id %q", aws.ToString(fake.input.ModelId))
	}
	if aws.ToString(fake.input.ContentType) != "application/json" {
		t.Errorf("unexpected content type %q", aws.ToString(fake.input.ContentType))
	}
	if aws.ToString(fake.input.Accept) != "application/json" {
		t.Errorf("unexpected accept %q", aws.ToString(fake.input.Accept))
	}
	if string(fake.input.Body) != `{"max_tokens":10}` {
		t.Errorf("unexpected body %s", fake.input.Body)
	}
}

func TestBedrockClient_InvokeModel_WrapsError(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	c := NewBedrockClientWithAPI(&fakeRuntime{err: cause}, zaptest.NewLogger(t))

	_, err := c.InvokeModel(context.Background(), "stability.stable-diffusion-xl-v1", []byte(`{}`))
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "stability.stable-diffusion-xl-v1") {
		t.Errorf("expected model id in error, got %q", err.Error())
	}
}

func TestLoggableBody_LargeBodiesBySize(t *testing.T) {
	f := loggableBody("request_body", make([]byte, logBodyLimit+1))
	if f.Key != "request_body_bytes" {
		t.Errorf("expected size field, got key %q", f.Key)
	}
	f = loggableBody("request_body", []byte("{}"))
	if f.Key != "request_body" {
		t.Errorf("expected verbatim field, got key %q", f.Key)
	}
}

func TestMockClient_RecordsCallsAndFails(t *testing.T) {
	m := NewMockClient()
	m.SetResponse("model-a", []byte("ok"))

	resp, err := m.InvokeModel(context.Background(), "model-a", []byte("req"))
	if err != nil || string(resp) != "ok" {
		t.Fatalf("expected scripted response, got %q, %v", resp, err)
	}
	if _, err := m.InvokeModel(context.Background(), "model-b", nil); err == nil {
		t.Error("expected error for unscripted model")
	}

	m.SetFailure("throttled")
	if _, err := m.InvokeModel(context.Background(), "model-a", nil); err == nil || err.Error() != "throttled" {
		t.Errorf("expected throttled error, got %v", err)
	}

	if len(m.Calls()) != 3 {
		t.Errorf("expected 3 recorded calls, got %d", len(m.Calls()))
	}

	m.Reset()
	if len(m.Calls()) != 0 || m.ShouldFail {
		t.Error("expected reset state")
	}
}
