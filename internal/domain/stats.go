package domain

import "github.com/shopspring/decimal"

// Stats is the aggregate view served by the analytics endpoint.
type Stats struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalOrders  int             `json:"totalOrders"`
	TopItem      *TopItem        `json:"topItem,omitempty"`
	OrdersPerDay []DayCount      `json:"ordersPerDay"`
	Payments     PaymentSplit    `json:"payments"`
}

type TopItem struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type PaymentSplit struct {
	Cash int `json:"cash"`
	Card int `json:"card"`
	UPI  int `json:"upi"`
}
