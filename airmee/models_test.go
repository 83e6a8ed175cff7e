package airmee_test

import (
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/airmee/sdk-go/airmee"
	"github.com/nyaruka/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhoneNumber(t *testing.T) *phonenumbers.PhoneNumber {
	t.Helper()
	number, err := phonenumbers.Parse("767123123", "SE")
	require.NoError(t, err)
	return number
}

func testValue() *money.Money {
	return money.New(2550, money.SEK)
}

func TestNewAddress_ResolvesCountry(t *testing.T) {
	tests := []struct {
		name    string
		country string
		want    string
	}{
		{"from code", "SE", "SE"},
		{"from english name", "Sweden", "SE"},
		{"other code", "GB", "GB"},
		{"other name", "Japan", "JP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := airmee.NewAddress("11257", tt.country)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.CountryCode())
			assert.Equal(t, "11257", addr.ZipCode())
		})
	}
}

func TestNewAddress_Invalid(t *testing.T) {
	tests := []struct {
		name                          string
		zip, country, street, city    string
	}{
		{"empty zip", "", "SE", "", ""},
		{"empty country", "11257", "", "", ""},
		{"unknown country", "11257", "Narnia", "", ""},
		{"street without city", "11257", "SE", "Drottninggatan 1", ""},
		{"city without street", "11257", "SE", "", "Stockholm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := airmee.NewDetailedAddress(tt.zip, tt.country, tt.street, tt.city)
			require.Error(t, err)
			assert.ErrorIs(t, err, airmee.ErrInvalidArgument)
		})
	}
}

func TestNewDetailedAddress_KeepsStreetAndCity(t *testing.T) {
	addr, err := airmee.NewDetailedAddress("11257", "Sweden", "Drottninggatan 1", "Stockholm")
	require.NoError(t, err)
	assert.Equal(t, "Drottninggatan 1", addr.StreetAndNumber())
	assert.Equal(t, "Stockholm", addr.City())
}

func TestNewItem_QuantityCoercion(t *testing.T) {
	tests := []struct {
		name     string
		quantity any
		want     int
	}{
		{"absent", nil, 1},
		{"zero", 0, 1},
		{"plain int", 7, 7},
		{"numeric string", "42", 42},
		{"fractional", 3.14, 3},
		{"non-numeric string", "eleven", 1},
		{"negative preserved", -5, -5},
		{"negative string preserved", "-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := airmee.NewItem(10, 20, 30, 500, testValue(), "A box", tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Quantity())
		})
	}
}

func TestNewItem_RequiredFields(t *testing.T) {
	tests := []struct {
		name                           string
		length, width, height, weight  int
		value                          *money.Money
		itemName                       string
	}{
		{"zero length", 0, 20, 30, 500, testValue(), "A box"},
		{"zero width", 10, 0, 30, 500, testValue(), "A box"},
		{"zero height", 10, 20, 0, 500, testValue(), "A box"},
		{"zero weight", 10, 20, 30, 0, testValue(), "A box"},
		{"nil value", 10, 20, 30, 500, nil, "A box"},
		{"empty name", 10, 20, 30, 500, testValue(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := airmee.NewItem(tt.length, tt.width, tt.height, tt.weight, tt.value, tt.itemName, 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, airmee.ErrInvalidArgument)
		})
	}
}

func TestNewItem_Valid(t *testing.T) {
	item, err := airmee.NewItem(10, 20, 30, 500, testValue(), "A box", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Length())
	assert.Equal(t, 20, item.Width())
	assert.Equal(t, 30, item.Height())
	assert.Equal(t, 500, item.Weight())
	assert.Equal(t, "A box", item.Name())
	assert.Equal(t, 1, item.Quantity())
	assert.Equal(t, int64(2550), item.Value().Amount())
}

func TestNewTimeRange_Ordering(t *testing.T) {
	_, err := airmee.NewTimeRange(1490680800, 1490680800, "")
	assert.ErrorIs(t, err, airmee.ErrInvalidArgument, "equal bounds are invalid")

	_, err = airmee.NewTimeRange(1490724000, 1490680800, "")
	assert.ErrorIs(t, err, airmee.ErrInvalidArgument, "inverted bounds are invalid")

	tr, err := airmee.NewTimeRange(1490680800, 1490724000, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1490680800), tr.Start().Unix())
	assert.Equal(t, int64(1490724000), tr.End().Unix())
}

func TestNewTimeRange_InputKinds(t *testing.T) {
	start := time.Unix(1490680800, 0)
	end := time.Unix(1490724000, 0)

	tests := []struct {
		name       string
		start, end any
	}{
		{"integers", 1490680800, 1490724000},
		{"int64", int64(1490680800), int64(1490724000)},
		{"numeric strings", "1490680800", "1490724000"},
		{"instants", start, end},
		{"mixed", start, "1490724000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := airmee.NewTimeRange(tt.start, tt.end, "")
			require.NoError(t, err)
			assert.Equal(t, start.Unix(), tr.Start().Unix())
			assert.Equal(t, end.Unix(), tr.End().Unix())
		})
	}
}

func TestNewTimeRange_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end any
	}{
		{"nil start", nil, 1490724000},
		{"nil end", 1490680800, nil},
		{"zero start", 0, 1490724000},
		{"non-numeric string", "yesterday", 1490724000},
		{"unsupported type", []int{1}, 1490724000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := airmee.NewTimeRange(tt.start, tt.end, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, airmee.ErrInvalidArgument)
		})
	}
}

func TestNewTimeRange_Formatted(t *testing.T) {
	tr, err := airmee.NewTimeRange(1490680800, 1490724000, "Tuesday 09:00 - 18:00")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday 09:00 - 18:00", tr.Formatted())
}

func TestNewRecipient(t *testing.T) {
	phone := testPhoneNumber(t)

	_, err := airmee.NewRecipient("", phone, "john@smith.com")
	assert.ErrorIs(t, err, airmee.ErrInvalidArgument)

	_, err = airmee.NewRecipient("John Smith", nil, "john@smith.com")
	assert.ErrorIs(t, err, airmee.ErrInvalidArgument)

	_, err = airmee.NewRecipient("John Smith", phone, "")
	assert.ErrorIs(t, err, airmee.ErrInvalidArgument)

	recipient, err := airmee.NewRecipient("John Smith", phone, "john@smith.com")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", recipient.Name())
	assert.Equal(t, "john@smith.com", recipient.Email())
	assert.Equal(t, uint64(767123123), recipient.PhoneNumber().GetNationalNumber())
}

func TestNewSchedule(t *testing.T) {
	pickup, err := airmee.NewTimeRange(1490680800, 1490724000, "")
	require.NoError(t, err)
	dropoff, err := airmee.NewTimeRange(1490702400, 1490709600, "")
	require.NoError(t, err)

	schedule := airmee.NewSchedule(pickup, dropoff)
	assert.Equal(t, int64(1490680800), schedule.Pickup().Start().Unix())
	assert.Equal(t, int64(1490709600), schedule.Dropoff().End().Unix())
}
