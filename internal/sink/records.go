// Package sink is a reference analytics backend for development and testing.
// It accepts the SDK's wire format, stores what it receives and answers with
// the envelope the SDK expects. It is not the production ingestion service.
package sink

import (
	"encoding/json"
	"time"
)

// PurchaseRecord is a received purchase event plus ingestion metadata.
type PurchaseRecord struct {
	ID             int64       `json:"-"`
	CurrencyCode   string      `json:"currencyCode"`
	Price          json.Number `json:"price"`
	PriceFormatted string      `json:"priceFormatted"`
	Kind           string      `json:"kind"`
	IsSandbox      bool        `json:"isSandbox"`
	AppName        string      `json:"appName"`
	StoreFront     string      `json:"storeFront"`
	IsTrial        bool        `json:"isTrial"`
	TrialPeriod    *string     `json:"trialPeriod,omitempty"`
	ReceivedAt     time.Time   `json:"receivedAt"`
}

// DownloadRecord is a received first-launch download event.
type DownloadRecord struct {
	ID         int64     `json:"-"`
	UserID     string    `json:"userId"`
	AppName    string    `json:"appName"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (r PurchaseRecord) validate() string {
	switch {
	case r.AppName == "":
		return "appName is required"
	case r.CurrencyCode == "":
		return "currencyCode is required"
	case r.IsTrial && r.TrialPeriod == nil:
		return "trialPeriod is required for trials"
	}
	return ""
}

func (r DownloadRecord) validate() string {
	switch {
	case r.UserID == "":
		return "userId is required"
	case r.AppName == "":
		return "appName is required"
	}
	return ""
}
