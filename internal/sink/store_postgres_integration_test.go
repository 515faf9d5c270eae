//go:build integration

package sink_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"revenew/internal/sink"
	"revenew/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *sink.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pg := containers.NewPostgresContainer(t)
	store, err := sink.NewPostgresStore(context.Background(), pg.URL)
	if err != nil {
		t.Fatalf("failed to connect store: %v", err)
	}
	t.Cleanup(store.Close)

	suite.Run(t, &PostgresStoreSuite{store: store})
}

func (s *PostgresStoreSuite) TestPurchaseRoundTrip() {
	ctx := context.Background()
	period := "7 days"
	in := sink.PurchaseRecord{
		CurrencyCode:   "USD",
		Price:          json.Number("9.99"),
		PriceFormatted: "$9.99",
		Kind:           "subscription",
		AppName:        "DemoApp",
		StoreFront:     "USA",
		IsTrial:        true,
		TrialPeriod:    &period,
		ReceivedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	s.Require().NoError(s.store.SavePurchase(ctx, in))

	out, err := s.store.Purchases(ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(out)

	last := out[len(out)-1]
	s.Equal("DemoApp", last.AppName)
	s.Equal("9.99", last.Price.String())
	s.Require().NotNil(last.TrialPeriod)
	s.Equal("7 days", *last.TrialPeriod)
	s.WithinDuration(in.ReceivedAt, last.ReceivedAt, time.Second)
}

func (s *PostgresStoreSuite) TestDownloadRoundTrip() {
	ctx := context.Background()
	in := sink.DownloadRecord{
		UserID:     "u-1",
		AppName:    "DemoApp",
		ReceivedAt: time.Now().UTC(),
	}

	s.Require().NoError(s.store.SaveDownload(ctx, in))

	out, err := s.store.Downloads(ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(out)
	s.Equal("u-1", out[len(out)-1].UserID)
}
