package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
)

// readBody reads the request body from a file, or stdin for "-"
func readBody(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" || path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

// runInvoke runs one handler once, the way API Gateway would, and prints the result
func runInvoke(ctx context.Context, s *CloudAIServer, name, bodyPath string) error {
	fn, err := s.handler.Handle(name)
	if err != nil {
		return err
	}

	body, err := readBody(bodyPath)
	if err != nil {
		return err
	}

	fmt.Printf("Invoking %s (%d byte body)\n", name, len(body))
	resp, err := fn(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/" + name,
		Body:       body,
	})
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, []byte(resp.Body), "", "  ") != nil {
		pretty.Reset()
		pretty.WriteString(resp.Body)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, pretty.String())
	}

	fmt.Printf("✅ Success! (status %d)\n", resp.StatusCode)
	fmt.Printf("Result:\n%s\n", pretty.String())
	return nil
}
