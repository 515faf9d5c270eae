package logclient

import (
	"encoding/json"

	"revenew/pkg/domain"
)

// PurchaseEvent is the outbound wire entity for /api/v1/log-purchase.
// TrialPeriod is present only when IsTrial is true.
type PurchaseEvent struct {
	CurrencyCode   string      `json:"currencyCode"`
	Price          json.Number `json:"price"`
	PriceFormatted string      `json:"priceFormatted"`
	Kind           string      `json:"kind"`
	IsSandbox      bool        `json:"isSandbox"`
	AppName        string      `json:"appName"`
	StoreFront     string      `json:"storeFront"`
	IsTrial        bool        `json:"isTrial"`
	TrialPeriod    *string     `json:"trialPeriod,omitempty"`
}

// DownloadEvent is the outbound wire entity for /api/v1/log-download.
type DownloadEvent struct {
	UserID  string `json:"userId"`
	AppName string `json:"appName"`
}

// LogResponse is whatever the analytics backend answers. The SDK only needs
// it to decode; it never branches on the contents.
type LogResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewPurchaseEvent builds the wire entity for a classified transaction.
func NewPurchaseEvent(ev domain.ClassifiedEvent, appName string) PurchaseEvent {
	storefront := ev.Transaction.Storefront
	if storefront == "" {
		storefront = "-"
	}

	out := PurchaseEvent{
		CurrencyCode:   ev.Product.CurrencyCode,
		Price:          json.Number(ev.Product.Price),
		PriceFormatted: ev.Product.DisplayPrice,
		Kind:           ev.Product.Kind.String(),
		IsSandbox:      ev.Transaction.IsSandbox(),
		AppName:        appName,
		StoreFront:     storefront,
		IsTrial:        ev.IsTrial,
	}
	if ev.IsTrial {
		period := ev.TrialPeriod
		out.TrialPeriod = &period
	}
	return out
}
