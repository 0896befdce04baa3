package models

import (
	"time"

	"gorm.io/gorm"
)

type ReportKind string

const (
	ReportKindSales     ReportKind = "SALES"
	ReportKindInventory ReportKind = "INVENTORY"
	ReportKindCustomers ReportKind = "CUSTOMERS"
)

type Cadence string

const (
	CadenceDaily   Cadence = "DAILY"
	CadenceWeekly  Cadence = "WEEKLY"
	CadenceMonthly Cadence = "MONTHLY"
)

// ReportSchedule is a standing request for a periodic emailed report.
// NextDueAt is always derived from the cadence, never set directly.
// Version guards the re-arm update so two overlapping poll cycles cannot
// both deliver the same due instant.
type ReportSchedule struct {
	gorm.Model
	OwnerID    uint       `gorm:"index;not null" json:"owner_id"`
	Kind       ReportKind `gorm:"not null" json:"kind"`
	Cadence    Cadence    `gorm:"not null" json:"cadence"`
	Recipient  string     `gorm:"not null" json:"recipient"`
	LastSentAt *time.Time `json:"last_sent_at,omitempty"`
	NextDueAt  time.Time  `gorm:"index;not null" json:"next_due_at"`
	Version    uint       `gorm:"not null;default:0" json:"-"`
}

func (k ReportKind) Valid() bool {
	switch k {
	case ReportKindSales, ReportKindInventory, ReportKindCustomers:
		return true
	default:
		return false
	}
}

func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	default:
		return false
	}
}
