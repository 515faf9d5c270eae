package domain

import "fmt"

// ProductKind mirrors the store's product taxonomy.
type ProductKind string

const (
	KindConsumable    ProductKind = "consumable"
	KindNonConsumable ProductKind = "nonconsumable"
	KindSubscription  ProductKind = "subscription"
)

// String returns the wire representation of the product kind.
func (k ProductKind) String() string {
	return string(k)
}

// PaymentMode describes how an introductory offer is billed.
type PaymentMode string

const (
	PaymentModeFreeTrial  PaymentMode = "freeTrial"
	PaymentModePayAsYouGo PaymentMode = "payAsYouGo"
	PaymentModePayUpFront PaymentMode = "payUpFront"
)

// PeriodUnit is the calendar unit of a subscription period.
type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodWeek  PeriodUnit = "week"
	PeriodMonth PeriodUnit = "month"
	PeriodYear  PeriodUnit = "year"
)

// Period is a subscription or offer duration, e.g. {7, day}.
type Period struct {
	Value int
	Unit  PeriodUnit
}

// String formats the period the way the analytics backend expects it:
// "1 week", "7 days".
func (p Period) String() string {
	if p.Value == 1 {
		return fmt.Sprintf("1 %s", p.Unit)
	}
	return fmt.Sprintf("%d %ss", p.Value, p.Unit)
}

// IntroductoryOffer describes a subscription's introductory pricing phase.
type IntroductoryOffer struct {
	PaymentMode PaymentMode
	Period      Period
}

// SubscriptionInfo is present only on subscription products.
type SubscriptionInfo struct {
	IntroductoryOffer *IntroductoryOffer
}

// Product is a store catalog entry. It is owned by the commerce layer; the
// SDK only reads it.
type Product struct {
	ID           string
	DisplayPrice string
	// Price is the decimal price as reported by the store, kept as a string
	// so values like "9.99" survive serialization without float rounding.
	Price        string
	CurrencyCode string
	Kind         ProductKind
	Subscription *SubscriptionInfo
}

// TrialOffer returns the free-trial introductory offer, if the product
// carries one.
func (p Product) TrialOffer() (IntroductoryOffer, bool) {
	if p.Subscription == nil || p.Subscription.IntroductoryOffer == nil {
		return IntroductoryOffer{}, false
	}
	offer := *p.Subscription.IntroductoryOffer
	if offer.PaymentMode != PaymentModeFreeTrial {
		return IntroductoryOffer{}, false
	}
	return offer, true
}
