package journals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates journal lifecycle values.
type Status string

const (
	StatusPosted Status = "POSTED"
	StatusVoid   Status = "VOID"
)

// SourceModuleTransfer tags journal entries created by the fund transfer
// operation; the bank ledger treats their lines as transfers.
const SourceModuleTransfer = "TRANSFER"

// Entry captures posting metadata.
type Entry struct {
	ID           int64
	Number       int64
	Date         time.Time
	SourceModule string
	SourceID     uuid.UUID
	Memo         string
	Status       Status
	CreatedAt    time.Time
	Lines        []Line
}

// Line stores a debit or credit amount for an account.
type Line struct {
	ID        int64
	JournalID int64
	AccountID int64
	Date      time.Time
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string

	// SourceModule is copied from the owning entry when lines are listed
	// standalone, so ledger rules can recognise transfers without a join.
	SourceModule string

	MissingAmounts int
}
