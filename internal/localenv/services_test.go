package localenv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestPingRedis(t *testing.T) {
	srv := miniredis.RunT(t)

	if err := PingRedis(context.Background(), srv.Addr()); err != nil {
		t.Fatalf("ping against live server: %v", err)
	}

	addr := srv.Addr()
	srv.Close()
	if err := PingRedis(context.Background(), addr); err == nil {
		t.Fatal("expected error against closed server")
	}
}

func TestStartServices_ComposeArgs(t *testing.T) {
	runner := &fakeRunner{}
	p := testProvisioner(t, runner)

	compose, err := p.Checker.DetectCompose(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.startServices(context.Background(), compose); err != nil {
		t.Fatal(err)
	}
	if !runner.called("docker compose up -d db redis mq") {
		t.Errorf("calls: %v", runner.calls)
	}
}

func TestStartServices_FailureWrapped(t *testing.T) {
	runner := &fakeRunner{failures: []string{"docker-compose up"}}
	p := testProvisioner(t, runner)

	if err := p.startServices(context.Background(), []string{"docker-compose"}); err == nil {
		t.Fatal("expected error")
	}
	if !runner.called("docker-compose up -d db redis mq") {
		t.Errorf("calls: %v", runner.calls)
	}
}
