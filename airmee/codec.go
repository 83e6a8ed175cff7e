package airmee

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/Rhymond/go-money"
)

// The schedule lookup asks for intervals starting a fixed two hours from
// now; the offset is sent verbatim alongside the formatted date.
const (
	scheduleOffsetMinutes = 120
	scheduleDateLayout    = "2006-01-02 15:04"
)

// scheduleQuery builds the query parameters for a schedule lookup. The
// street-and-number and city travel only when both are present on the
// address.
func scheduleQuery(placeID string, address Address, now time.Time) url.Values {
	date := now.In(referenceZone).Add(scheduleOffsetMinutes * time.Minute)

	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("country", address.CountryCode())
	query.Set("zip_code", address.ZipCode())
	query.Set("date", date.Format(scheduleDateLayout))
	query.Set("offset", "120")

	if address.StreetAndNumber() != "" && address.City() != "" {
		query.Set("street_and_number", address.StreetAndNumber())
		query.Set("city", address.City())
	}

	return query
}

// thresholdQuery builds the query parameters for a threshold lookup.
func thresholdQuery(placeID string) url.Values {
	query := url.Values{}
	query.Set("place_id", placeID)
	return query
}

// encodeDeliveryRequest translates domain values into the request_delivery
// JSON body.
func encodeDeliveryRequest(placeID, ecommID string, recipient Recipient, dropoffAddress Address, items []Item, pickupInterval, dropoffInterval TimeRange) *deliveryRequest {
	wireItems := make([]wireItem, len(items))
	for i, item := range items {
		wireItems[i] = wireItem{
			Length:   item.Length(),
			Width:    item.Width(),
			Height:   item.Height(),
			Weight:   item.Weight(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			UnitPrice: wireMoney{
				Currency: item.Value().Currency().Code,
				Amount:   item.Value().Amount(),
			},
		}
	}

	return &deliveryRequest{
		PlaceID: placeID,
		EcommID: ecommID,
		Recipient: wireRecipient{
			Name:                   recipient.Name(),
			PhoneNumber:            recipient.PhoneNumber().GetNationalNumber(),
			PhoneNumberCountryCode: recipient.PhoneNumber().GetCountryCode(),
			Email:                  recipient.Email(),
		},
		DropoffAddress: wireAddress{
			StreetAndNumber: dropoffAddress.StreetAndNumber(),
			City:            dropoffAddress.City(),
			ZipCode:         dropoffAddress.ZipCode(),
			Country:         dropoffAddress.CountryCode(),
		},
		Items: wireItems,
		PickupInterval: wireEpochInterval{
			Start: pickupInterval.Start().Unix(),
			End:   pickupInterval.End().Unix(),
		},
		DropoffInterval: wireEpochInterval{
			Start: dropoffInterval.Start().Unix(),
			End:   dropoffInterval.End().Unix(),
		},
	}
}

// decodeSchedules parses a schedule lookup body into Schedules, in the order
// the server sent them. Any structural violation in the chain yields the
// same malformed-response error.
func decodeSchedules(body []byte) ([]Schedule, error) {
	var payload scheduleListResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.ListOfSchedules == nil {
		return nil, errMalformedResponse()
	}

	schedules := make([]Schedule, 0, len(*payload.ListOfSchedules))
	for _, element := range *payload.ListOfSchedules {
		schedule, err := decodeSchedule(element)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

func decodeSchedule(element scheduleElement) (Schedule, error) {
	pickup, err := decodeInterval(element.PickupInterval)
	if err != nil {
		return Schedule{}, err
	}
	dropoff, err := decodeInterval(element.DropoffInterval)
	if err != nil {
		return Schedule{}, err
	}
	return NewSchedule(pickup, dropoff), nil
}

// decodeInterval builds a TimeRange from a raw interval object. Both bounds
// must be present; formatted_as_schedule is optional.
func decodeInterval(interval map[string]any) (TimeRange, error) {
	if interval == nil {
		return TimeRange{}, errMalformedResponse()
	}

	start, ok := interval["start"]
	if !ok {
		return TimeRange{}, errMalformedResponse()
	}
	end, ok := interval["end"]
	if !ok {
		return TimeRange{}, errMalformedResponse()
	}

	formatted, _ := interval["formatted_as_schedule"].(string)

	return NewTimeRange(start, end, formatted)
}

// decodeThreshold parses a threshold lookup body into an Item carrying the
// maximum accepted dimensions and weight. The item gets a placeholder
// zero-value price and a fixed name.
func decodeThreshold(body []byte) (Item, error) {
	var payload thresholdResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.ThresholdValues == nil {
		return Item{}, errMalformedResponse()
	}

	values := payload.ThresholdValues
	if values.Length == nil || values.Width == nil || values.Height == nil || values.Weight == nil {
		return Item{}, errMalformedResponse()
	}

	return NewItem(
		int(*values.Length),
		int(*values.Width),
		int(*values.Height),
		int(*values.Weight),
		thresholdValue(),
		"Threshold item",
		nil,
	)
}

// thresholdValue is the placeholder unit price attached to threshold items.
func thresholdValue() *money.Money {
	return money.New(0, money.SEK)
}

// decodeOrder parses a delivery request body into an Order.
func decodeOrder(body []byte) (Order, error) {
	var payload orderResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.Order == nil {
		return Order{}, errMalformedResponse()
	}

	if payload.Order.OrderID == nil || payload.Order.TrackingURL == nil {
		return Order{}, errMalformedResponse()
	}

	return Order{id: *payload.Order.OrderID, trackingURL: *payload.Order.TrackingURL}, nil
}
