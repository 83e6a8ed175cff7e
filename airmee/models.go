// Package airmee is a client library for the Airmee parcel-delivery API.
// It exposes typed value objects, three API operations, and a discriminated
// error taxonomy; the HTTP transport is pluggable for testing.
package airmee

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/biter777/countries"
	"github.com/nyaruka/phonenumbers"
)

// The provider schedules deliveries in a fixed reference time zone.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	if loc, err := time.LoadLocation("Europe/Stockholm"); err == nil {
		return loc
	}
	return time.FixedZone("CET", 60*60)
}

// Address is a geographical location identified by zip code and country,
// optionally narrowed down with a street-and-number and a city. Values are
// validated at construction and immutable afterwards.
type Address struct {
	zipCode         string
	countryCode     string
	streetAndNumber string
	city            string
}

// NewAddress builds an Address from a zip code and a country. The country is
// either an ISO 3166-2 two-letter code or an English-language country name
// (e.g. "Sweden"); either way the stored code is the resolved two-letter one.
func NewAddress(zipCode, country string) (Address, error) {
	return NewDetailedAddress(zipCode, country, "", "")
}

// NewDetailedAddress builds an Address including a street-and-number and a
// city. The two extra fields must be supplied together or not at all.
func NewDetailedAddress(zipCode, country, streetAndNumber, city string) (Address, error) {
	if zipCode == "" {
		return Address{}, newInvalidArgument("zipCode parameter is required")
	}

	if country == "" {
		return Address{}, newInvalidArgument("country parameter is required")
	}
	resolved := countries.ByName(country)
	if resolved == countries.Unknown {
		return Address{}, newInvalidArgument("country %q does not correspond to a real country", country)
	}

	if (streetAndNumber == "") != (city == "") {
		return Address{}, newInvalidArgument("streetAndNumber and city must both be specified")
	}

	return Address{
		zipCode:         zipCode,
		countryCode:     resolved.Alpha2(),
		streetAndNumber: streetAndNumber,
		city:            city,
	}, nil
}

// ZipCode returns the zip code.
func (a Address) ZipCode() string { return a.zipCode }

// CountryCode returns the resolved ISO 3166-2 two-letter country code.
func (a Address) CountryCode() string { return a.countryCode }

// StreetAndNumber returns the street and house number, if specified.
func (a Address) StreetAndNumber() string { return a.streetAndNumber }

// City returns the city, if specified.
func (a Address) City() string { return a.city }

// Item is one physical package (or several identical ones) delivered as part
// of an order. Dimensions are centimetres, weight is grams.
type Item struct {
	length   int
	width    int
	height   int
	weight   int
	value    *money.Money
	name     string
	quantity int
}

// NewItem validates and builds an Item. The quantity accepts any input and
// is coerced to its integer value; a coerced zero (covering absent, nil,
// non-numeric, and literal zero inputs) becomes 1. Negative integers are kept
// as-is.
func NewItem(length, width, height, weight int, value *money.Money, name string, quantity any) (Item, error) {
	if length == 0 {
		return Item{}, newInvalidArgument("length parameter is required")
	}
	if width == 0 {
		return Item{}, newInvalidArgument("width parameter is required")
	}
	if height == 0 {
		return Item{}, newInvalidArgument("height parameter is required")
	}
	if weight == 0 {
		return Item{}, newInvalidArgument("weight parameter is required")
	}
	if value == nil {
		return Item{}, newInvalidArgument("value parameter is required")
	}
	if name == "" {
		return Item{}, newInvalidArgument("name parameter is required")
	}

	qty := coerceQuantity(quantity)
	if qty == 0 {
		qty = 1
	}

	return Item{
		length:   length,
		width:    width,
		height:   height,
		weight:   weight,
		value:    value,
		name:     name,
		quantity: qty,
	}, nil
}

// Length returns the length in centimetres.
func (i Item) Length() int { return i.length }

// Width returns the width in centimetres.
func (i Item) Width() int { return i.width }

// Height returns the height in centimetres.
func (i Item) Height() int { return i.height }

// Weight returns the weight in grams.
func (i Item) Weight() int { return i.weight }

// Value returns the unit price.
func (i Item) Value() *money.Money { return i.value }

// Name returns the item name.
func (i Item) Name() string { return i.name }

// Quantity returns the number of items of this type in the delivery.
func (i Item) Quantity() int { return i.quantity }

// coerceQuantity converts an arbitrary quantity input to an integer.
// Fractions truncate, numeric strings parse up to the first non-digit, and
// everything unrecognisable coerces to zero. Negative values pass through
// unchanged.
func coerceQuantity(v any) int {
	switch q := v.(type) {
	case nil:
		return 0
	case int:
		return q
	case int8:
		return int(q)
	case int16:
		return int(q)
	case int32:
		return int(q)
	case int64:
		return int(q)
	case uint:
		return int(q)
	case uint8:
		return int(q)
	case uint16:
		return int(q)
	case uint32:
		return int(q)
	case uint64:
		return int(q)
	case float32:
		return int(q)
	case float64:
		return int(q)
	case bool:
		if q {
			return 1
		}
		return 0
	case json.Number:
		if n, err := q.Int64(); err == nil {
			return int(n)
		}
		if f, err := q.Float64(); err == nil {
			return int(f)
		}
		return 0
	case string:
		return leadingInt(q)
	default:
		return 0
	}
}

// leadingInt parses the longest leading integer of a string, so "42" is 42,
// "3.14" is 3, and "eleven" is 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0
	}
	return n
}

// Recipient is the person who will receive the order. The phone number is
// type-checked only; its contents are assumed pre-validated by the caller.
type Recipient struct {
	name        string
	phoneNumber *phonenumbers.PhoneNumber
	email       string
}

// NewRecipient validates and builds a Recipient.
func NewRecipient(name string, phoneNumber *phonenumbers.PhoneNumber, email string) (Recipient, error) {
	if name == "" {
		return Recipient{}, newInvalidArgument("name parameter is required")
	}
	if phoneNumber == nil {
		return Recipient{}, newInvalidArgument("phoneNumber parameter is required and must be a PhoneNumber")
	}
	if email == "" || !validEmail(email) {
		return Recipient{}, newInvalidArgument("email parameter is required and must be a valid email address")
	}

	return Recipient{name: name, phoneNumber: phoneNumber, email: email}, nil
}

// Name returns the recipient's name.
func (r Recipient) Name() string { return r.name }

// PhoneNumber returns the recipient's phone number.
func (r Recipient) PhoneNumber() *phonenumbers.PhoneNumber { return r.phoneNumber }

// Email returns the recipient's email address.
func (r Recipient) Email() string { return r.email }

// TimeRange is a half-open window of time with a strictly later end than
// start. Instants accept a time.Time, an integer Unix timestamp, or a numeric
// string; the range carries an optional opaque display string.
type TimeRange struct {
	start     time.Time
	end       time.Time
	formatted string
}

// NewTimeRange builds a TimeRange in the provider's reference time zone.
func NewTimeRange(start, end any, formatted string) (TimeRange, error) {
	return NewTimeRangeIn(start, end, formatted, nil)
}

// NewTimeRangeIn builds a TimeRange in the given time zone. A nil location
// falls back to the reference zone.
func NewTimeRangeIn(start, end any, formatted string, loc *time.Location) (TimeRange, error) {
	if loc == nil {
		loc = referenceZone
	}

	startAt, err := coerceInstant(start, "start", loc)
	if err != nil {
		return TimeRange{}, err
	}
	endAt, err := coerceInstant(end, "end", loc)
	if err != nil {
		return TimeRange{}, err
	}

	if !endAt.After(startAt) {
		return TimeRange{}, newInvalidArgument("start must be before end")
	}

	return TimeRange{start: startAt, end: endAt, formatted: formatted}, nil
}

// Start returns the start of the range.
func (t TimeRange) Start() time.Time { return t.start }

// End returns the end of the range.
func (t TimeRange) End() time.Time { return t.end }

// Formatted returns the display representation of the range, if one was
// specified.
func (t TimeRange) Formatted() string { return t.formatted }

// coerceInstant converts a timestamp-ish input into a time.Time in loc.
func coerceInstant(v any, name string, loc *time.Location) (time.Time, error) {
	switch ts := v.(type) {
	case nil:
		return time.Time{}, newInvalidArgument("%s is required", name)
	case time.Time:
		if ts.IsZero() {
			return time.Time{}, newInvalidArgument("%s is required", name)
		}
		return ts.In(loc), nil
	case int:
		return epochInstant(int64(ts), name, loc)
	case int32:
		return epochInstant(int64(ts), name, loc)
	case int64:
		return epochInstant(ts, name, loc)
	case uint:
		return epochInstant(int64(ts), name, loc)
	case uint64:
		return epochInstant(int64(ts), name, loc)
	case float64:
		return epochInstant(int64(ts), name, loc)
	case json.Number:
		n, err := ts.Int64()
		if err != nil {
			return time.Time{}, newInvalidArgument("%s must be a valid timestamp", name)
		}
		return epochInstant(n, name, loc)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
		if err != nil {
			return time.Time{}, newInvalidArgument("%s must be a valid timestamp", name)
		}
		return epochInstant(n, name, loc)
	default:
		return time.Time{}, newInvalidArgument("%s must be a valid timestamp", name)
	}
}

func epochInstant(seconds int64, name string, loc *time.Location) (time.Time, error) {
	if seconds == 0 {
		return time.Time{}, newInvalidArgument("%s is required", name)
	}
	return time.Unix(seconds, 0).In(loc), nil
}

// Schedule pairs a pickup window with a dropoff window offered by the
// provider.
type Schedule struct {
	pickup  TimeRange
	dropoff TimeRange
}

// NewSchedule builds a Schedule from two valid time ranges.
func NewSchedule(pickup, dropoff TimeRange) Schedule {
	return Schedule{pickup: pickup, dropoff: dropoff}
}

// Pickup returns the window in which the items would be collected.
func (s Schedule) Pickup() TimeRange { return s.pickup }

// Dropoff returns the window in which the items would be delivered.
func (s Schedule) Dropoff() TimeRange { return s.dropoff }

// Order is a successfully-registered delivery. Orders are only ever built
// from provider responses, never by the caller.
type Order struct {
	id          string
	trackingURL string
}

// ID returns the unique order id in the provider's system.
func (o Order) ID() string { return o.id }

// TrackingURL returns a URL at which the recipient can track the delivery.
func (o Order) TrackingURL() string { return o.trackingURL }
