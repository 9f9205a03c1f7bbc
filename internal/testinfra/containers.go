// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

// Package testinfra starts the MongoDB catalog store and the Redis metadata
// cache in throwaway containers for integration tests. Build with
// -tags integration; tests skip when Docker is unreachable.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mongoImage = "mongo:7"
	mongoPort  = nat.Port("27017/tcp")

	redisImage = "redis:7-alpine"
	redisPort  = nat.Port("6379/tcp")
)

// StartMongo runs MongoDB for the rest of t and returns its connection URI.
func StartMongo(ctx context.Context, t *testing.T) string {
	t.Helper()
	addr := start(ctx, t, mongoImage, mongoPort, "Waiting for connections", 90*time.Second)
	return "mongodb://" + addr
}

// StartRedis runs Redis for the rest of t and returns its host:port.
func StartRedis(ctx context.Context, t *testing.T) string {
	t.Helper()
	return start(ctx, t, redisImage, redisPort, "Ready to accept connections", 60*time.Second)
}

func start(ctx context.Context, t *testing.T, image string, port nat.Port, readyLog string, timeout time.Duration) string {
	t.Helper()
	if !dockerAvailable(ctx) {
		t.Skip("Skipping test: Docker not available")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(port),
				wait.ForLog(readyLog),
			).WithStartupTimeout(timeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate %s: %v", image, err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("%s host: %v", image, err)
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("%s port: %v", image, err)
	}
	return host + ":" + mapped.Port()
}

func dockerAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}
