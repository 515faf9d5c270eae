package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"revenew/pkg/domain"
)

type ClassifierSuite struct {
	suite.Suite
	now time.Time
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupSuite() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ClassifierSuite) trialProduct(period domain.Period) domain.Product {
	return domain.Product{
		ID:           "pro_monthly",
		DisplayPrice: "$9.99",
		Price:        "9.99",
		CurrencyCode: "USD",
		Kind:         domain.KindSubscription,
		Subscription: &domain.SubscriptionInfo{
			IntroductoryOffer: &domain.IntroductoryOffer{
				PaymentMode: domain.PaymentModeFreeTrial,
				Period:      period,
			},
		},
	}
}

func (s *ClassifierSuite) TestDedup() {
	product := s.trialProduct(domain.Period{Value: 7, Unit: domain.PeriodDay})
	txn := domain.Transaction{ID: "1001", ProductID: product.ID, PurchaseDate: s.now, OriginalPurchaseDate: s.now}

	s.Run("already logged transaction is not reported", func() {
		_, ok := Classify(txn, product, "1001")
		s.False(ok)
	})

	s.Run("different last logged id is reported", func() {
		_, ok := Classify(txn, product, "1000")
		s.True(ok)
	})

	s.Run("empty last logged id is reported", func() {
		_, ok := Classify(txn, product, "")
		s.True(ok)
	})
}

func (s *ClassifierSuite) TestTrialDetection() {
	s.Run("first transaction of a trial subscription is a trial start", func() {
		// Scenario: transaction 1001, pro_monthly with 7-day free trial,
		// purchase date equals original purchase date.
		product := s.trialProduct(domain.Period{Value: 7, Unit: domain.PeriodDay})
		txn := domain.Transaction{ID: "1001", ProductID: product.ID, PurchaseDate: s.now, OriginalPurchaseDate: s.now}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.True(event.IsTrial)
		s.Equal("7 days", event.TrialPeriod)
	})

	s.Run("renewal thirty days after group start is not a trial", func() {
		product := s.trialProduct(domain.Period{Value: 7, Unit: domain.PeriodDay})
		txn := domain.Transaction{
			ID:                   "1002",
			ProductID:            product.ID,
			PurchaseDate:         s.now,
			OriginalPurchaseDate: s.now.Add(-30 * 24 * time.Hour),
		}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.False(event.IsTrial)
		s.Empty(event.TrialPeriod)
	})

	s.Run("gap of exactly sixty seconds is not a trial", func() {
		product := s.trialProduct(domain.Period{Value: 1, Unit: domain.PeriodWeek})
		txn := domain.Transaction{
			ID:                   "1003",
			ProductID:            product.ID,
			PurchaseDate:         s.now,
			OriginalPurchaseDate: s.now.Add(-60 * time.Second),
		}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.False(event.IsTrial)
	})

	s.Run("gap just under sixty seconds is a trial", func() {
		product := s.trialProduct(domain.Period{Value: 1, Unit: domain.PeriodWeek})
		txn := domain.Transaction{
			ID:                   "1004",
			ProductID:            product.ID,
			PurchaseDate:         s.now,
			OriginalPurchaseDate: s.now.Add(-59 * time.Second),
		}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.True(event.IsTrial)
		s.Equal("1 week", event.TrialPeriod)
	})

	s.Run("clock skew with original date after purchase date still counts", func() {
		product := s.trialProduct(domain.Period{Value: 3, Unit: domain.PeriodDay})
		txn := domain.Transaction{
			ID:                   "1005",
			ProductID:            product.ID,
			PurchaseDate:         s.now,
			OriginalPurchaseDate: s.now.Add(5 * time.Second),
		}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.True(event.IsTrial)
	})

	s.Run("product without an offer is never a trial", func() {
		product := domain.Product{ID: "pro_monthly", Kind: domain.KindSubscription, Subscription: &domain.SubscriptionInfo{}}
		txn := domain.Transaction{ID: "1006", ProductID: product.ID, PurchaseDate: s.now, OriginalPurchaseDate: s.now}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.False(event.IsTrial)
		s.Empty(event.TrialPeriod)
	})

	s.Run("consumable is never a trial", func() {
		product := domain.Product{ID: "coins_100", Kind: domain.KindConsumable}
		txn := domain.Transaction{ID: "1007", ProductID: product.ID, PurchaseDate: s.now, OriginalPurchaseDate: s.now}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.False(event.IsTrial)
	})

	s.Run("paid introductory offer is never a trial", func() {
		product := s.trialProduct(domain.Period{Value: 1, Unit: domain.PeriodMonth})
		product.Subscription.IntroductoryOffer.PaymentMode = domain.PaymentModePayUpFront
		txn := domain.Transaction{ID: "1008", ProductID: product.ID, PurchaseDate: s.now, OriginalPurchaseDate: s.now}

		event, ok := Classify(txn, product, "")
		s.Require().True(ok)
		s.False(event.IsTrial)
	})
}

func (s *ClassifierSuite) TestTrialPeriodInvariant() {
	// TrialPeriod must be non-empty exactly when IsTrial is set.
	product := s.trialProduct(domain.Period{Value: 7, Unit: domain.PeriodDay})

	trial := domain.Transaction{ID: "1", PurchaseDate: s.now, OriginalPurchaseDate: s.now}
	renewal := domain.Transaction{ID: "2", PurchaseDate: s.now, OriginalPurchaseDate: s.now.Add(-time.Hour)}

	ev, _ := Classify(trial, product, "")
	s.True(ev.IsTrial)
	s.NotEmpty(ev.TrialPeriod)

	ev, _ = Classify(renewal, product, "")
	s.False(ev.IsTrial)
	s.Empty(ev.TrialPeriod)
}
