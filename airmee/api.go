package airmee

import (
	"context"
	"net/http"
	"net/url"
)

// Transport abstracts the HTTP layer so it can be swapped for a scripted
// double in tests. Implementations return a Response for any status code the
// server produced and an error only for transport-level failures.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Request is one outbound API call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Query  url.Values
	Body   any // JSON-encoded when non-nil
}

// Response is the raw outcome of an API call.
type Response struct {
	StatusCode int
	Body       []byte
}

// ============================================================================
// Wire types (match the Airmee integration API)
// ============================================================================

// deliveryRequest is the JSON body for POST request_delivery.
type deliveryRequest struct {
	PlaceID         string            `json:"place_id"`
	EcommID         string            `json:"ecomm_id"`
	Recipient       wireRecipient     `json:"recipient"`
	DropoffAddress  wireAddress       `json:"dropoff_address"`
	Items           []wireItem        `json:"items"`
	PickupInterval  wireEpochInterval `json:"pickup_interval"`
	DropoffInterval wireEpochInterval `json:"dropoff_interval"`
}

type wireRecipient struct {
	Name                   string `json:"name"`
	PhoneNumber            uint64 `json:"phone_number"`
	PhoneNumberCountryCode int32  `json:"phone_number_country_code"`
	Email                  string `json:"email"`
}

type wireAddress struct {
	StreetAndNumber string `json:"street_and_number"`
	City            string `json:"city"`
	ZipCode         string `json:"zip_code"`
	Country         string `json:"country"`
}

type wireItem struct {
	Length    int       `json:"length"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice wireMoney `json:"unit_price"`
}

type wireMoney struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// wireEpochInterval carries a time range as Unix-epoch seconds.
type wireEpochInterval struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// scheduleListResponse is the body of a successful schedule lookup. Pointer
// and map fields distinguish absent keys from empty values so the decode
// guards can reject structurally invalid bodies.
type scheduleListResponse struct {
	ListOfSchedules *[]scheduleElement `json:"list_of_schedules"`
}

// scheduleElement keeps the intervals loosely typed: the provider has been
// seen sending both numeric and string epoch values for start/end.
type scheduleElement struct {
	PickupInterval  map[string]any `json:"pickup_interval"`
	DropoffInterval map[string]any `json:"dropoff_interval"`
}

// thresholdResponse is the body of a successful threshold lookup.
type thresholdResponse struct {
	ThresholdValues *struct {
		Length *float64 `json:"length"`
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
		Weight *float64 `json:"weight"`
	} `json:"threshold_values"`
}

// orderResponse is the body of a successful delivery request.
type orderResponse struct {
	Order *struct {
		OrderID     *string `json:"order_id"`
		TrackingURL *string `json:"tracking_url"`
	} `json:"order"`
}
