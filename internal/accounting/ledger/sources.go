package ledger

import (
	"context"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ap"
	"github.com/aquafarm-erp/aquafarm-erp/internal/ar"
	"github.com/aquafarm-erp/aquafarm-erp/internal/treasury"
)

// Collaborator interfaces. The pgx repositories satisfy these; tests use
// in-memory fakes.
type (
	DepositSource interface {
		ListDeposits(ctx context.Context) ([]treasury.Deposit, error)
	}
	BillPaymentSource interface {
		ListBillPayments(ctx context.Context) ([]ap.BillPayment, error)
	}
	InvoiceSource interface {
		ListInvoices(ctx context.Context) ([]ar.Invoice, error)
	}
	JournalSource interface {
		ListLines(ctx context.Context) ([]journals.Line, error)
	}
)

// sourceSet fetches each collaborator at most once, so a full-tree rollup
// does not refetch per account. Fetch failures surface as SourceFetchError.
type sourceSet struct {
	deposits     DepositSource
	billPayments BillPaymentSource
	invoices     InvoiceSource
	journals     JournalSource

	depositList    []treasury.Deposit
	depositsLoaded bool
	paymentList    []ap.BillPayment
	paymentsLoaded bool
	invoiceList    []ar.Invoice
	invoicesLoaded bool
	lineList       []journals.Line
	linesLoaded    bool
}

func (s *sourceSet) Deposits(ctx context.Context) ([]treasury.Deposit, error) {
	if !s.depositsLoaded {
		list, err := s.deposits.ListDeposits(ctx)
		if err != nil {
			return nil, &SourceFetchError{Source: "deposits", Err: err}
		}
		s.depositList, s.depositsLoaded = list, true
	}
	return s.depositList, nil
}

func (s *sourceSet) BillPayments(ctx context.Context) ([]ap.BillPayment, error) {
	if !s.paymentsLoaded {
		list, err := s.billPayments.ListBillPayments(ctx)
		if err != nil {
			return nil, &SourceFetchError{Source: "bill payments", Err: err}
		}
		s.paymentList, s.paymentsLoaded = list, true
	}
	return s.paymentList, nil
}

func (s *sourceSet) Invoices(ctx context.Context) ([]ar.Invoice, error) {
	if !s.invoicesLoaded {
		list, err := s.invoices.ListInvoices(ctx)
		if err != nil {
			return nil, &SourceFetchError{Source: "invoices", Err: err}
		}
		s.invoiceList, s.invoicesLoaded = list, true
	}
	return s.invoiceList, nil
}

func (s *sourceSet) JournalLines(ctx context.Context) ([]journals.Line, error) {
	if !s.linesLoaded {
		list, err := s.journals.ListLines(ctx)
		if err != nil {
			return nil, &SourceFetchError{Source: "journal lines", Err: err}
		}
		s.lineList, s.linesLoaded = list, true
	}
	return s.lineList, nil
}
