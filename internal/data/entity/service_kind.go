package entity

// ServiceKind enumerates every bookable service a quote can carry.
type ServiceKind string

const (
	ServiceKindCabin   ServiceKind = "cabin"
	ServiceKindCar     ServiceKind = "car"
	ServiceKindAirport ServiceKind = "airport"
	ServiceKindHotel   ServiceKind = "hotel"
	ServiceKindTour    ServiceKind = "tour"
	ServiceKindRentcar ServiceKind = "rentcar"
)

// PriceTable describes where a kind's authoritative prices live.
type PriceTable struct {
	Table     string
	KeyColumn string
}

var priceTables = map[ServiceKind]PriceTable{
	ServiceKindCabin:   {Table: "cabin_prices", KeyColumn: "code"},
	ServiceKindCar:     {Table: "car_prices", KeyColumn: "code"},
	ServiceKindAirport: {Table: "airport_prices", KeyColumn: "code"},
	ServiceKindHotel:   {Table: "hotel_prices", KeyColumn: "code"},
	ServiceKindTour:    {Table: "tour_prices", KeyColumn: "code"},
	ServiceKindRentcar: {Table: "rentcar_prices", KeyColumn: "code"},
}

// PriceTableFor returns the price table for a kind. The boolean is false for
// kinds outside the closed set; callers must not fall back to a default table.
func PriceTableFor(kind ServiceKind) (PriceTable, bool) {
	pt, ok := priceTables[kind]
	return pt, ok
}

func (k ServiceKind) Valid() bool {
	_, ok := priceTables[k]
	return ok
}
