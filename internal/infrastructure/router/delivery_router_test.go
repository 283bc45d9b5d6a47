package router

import (
	"context"
	"errors"
	"testing"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	name     string
	err      error
	received []string
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(ctx context.Context, report *entity.RunReport, html string) error {
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, html)
	return nil
}

func TestDeliveryRouterFansOut(t *testing.T) {
	router := NewDeliveryRouter(logger.NewNop(), nil)
	first := &recordingSink{name: "file"}
	second := &recordingSink{name: "gmail"}
	router.Register(first)
	router.Register(second)

	delivered := router.Deliver(context.Background(), &entity.RunReport{}, "<html></html>")

	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{"<html></html>"}, first.received)
	assert.Equal(t, []string{"<html></html>"}, second.received)
}

func TestDeliveryRouterFailingSinkDoesNotBlockOthers(t *testing.T) {
	router := NewDeliveryRouter(logger.NewNop(), nil)
	failing := &recordingSink{name: "gmail", err: errors.New("smtp down")}
	working := &recordingSink{name: "file"}
	router.Register(failing)
	router.Register(working)

	delivered := router.Deliver(context.Background(), &entity.RunReport{}, "<html></html>")

	assert.Equal(t, 1, delivered)
	assert.Len(t, working.received, 1)
}

func TestDeliveryRouterNoSinks(t *testing.T) {
	router := NewDeliveryRouter(logger.NewNop(), nil)
	assert.Zero(t, router.Deliver(context.Background(), &entity.RunReport{}, "<html></html>"))
}
