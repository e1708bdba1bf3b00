// File: models/records.go
package models

import "time"

// ActivityRecord is an audit entry for an admin write.
type ActivityRecord struct {
	ID       string    `bson:"id" json:"id"`
	Actor    string    `bson:"actor" json:"actor"`
	Action   string    `bson:"action" json:"action"`
	Entity   string    `bson:"entity" json:"entity"`
	EntityID string    `bson:"entityId" json:"entityId"`
	From     string    `bson:"from,omitempty" json:"from,omitempty"`
	To       string    `bson:"to,omitempty" json:"to,omitempty"`
	At       time.Time `bson:"at" json:"at"`
}

// ActionCount is one row of the activity breakdown report.
type ActionCount struct {
	Action string `bson:"_id" json:"action"`
	Count  int    `bson:"count" json:"count"`
}

const (
	ActionBookingStatus  = "booking.status"
	ActionBookingPayment = "booking.payment"
	ActionUserUpdate     = "user.update"
	ActionUserDisable    = "user.disable"
	ActionUserDelete     = "user.delete"
	ActionWorkerWrite    = "worker.write"
	ActionWorkerDelete   = "worker.delete"
	ActionHoardingWrite  = "hoarding.write"
	ActionHoardingDelete = "hoarding.delete"
	ActionHeroWrite      = "hero.write"
	ActionPasswordChange = "account.password"
)
