// Package accounting exposes the accounting engine over HTTP: the chart of
// accounts tree, rolled-up balances, reconstructed ledgers, fund transfers,
// and the balance sheet.
package accounting

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/accounts"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/journals"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/ledger"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/money"
	"github.com/aquafarm-erp/aquafarm-erp/internal/accounting/reports"
	"github.com/aquafarm-erp/aquafarm-erp/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// Handler wires the accounting endpoints.
type Handler struct {
	logger     *slog.Logger
	accounts   *accounts.Service
	journals   *journals.Service
	recon      *ledger.Reconstructor
	aggregator *ledger.Aggregator
	assembler  *reports.Assembler
}

func NewHandler(
	logger *slog.Logger,
	accountService *accounts.Service,
	journalService *journals.Service,
	recon *ledger.Reconstructor,
	aggregator *ledger.Aggregator,
	assembler *reports.Assembler,
) *Handler {
	return &Handler{
		logger:     logger,
		accounts:   accountService,
		journals:   journalService,
		recon:      recon,
		aggregator: aggregator,
		assembler:  assembler,
	}
}

// MountRoutes registers HTTP routes for the accounting module.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts/tree", h.Tree)
	r.Get("/accounts/balances", h.Balances)
	r.Get("/accounts/{id}/ledger", h.Ledger)
	r.Post("/accounts/transfer", h.Transfer)
	r.Get("/reports/balance-sheet", h.BalanceSheet)
}

type treeNodeVM struct {
	AccountID   int64        `json:"account_id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	AccountType string       `json:"account_type"`
	Parent      *int64       `json:"parent"`
	Active      bool         `json:"active"`
	Children    []treeNodeVM `json:"children"`
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.accounts.Tree(r.Context())
	if err != nil {
		h.respondTreeError(w, "build account tree", err)
		return
	}
	out := make([]treeNodeVM, 0, len(tree.Roots()))
	for _, root := range tree.Roots() {
		out = append(out, treeNodeView(root))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func treeNodeView(node *accounts.Node) treeNodeVM {
	vm := treeNodeVM{
		AccountID:   node.Account.ID,
		Code:        node.Account.Code,
		Name:        node.Account.Name,
		AccountType: string(node.Account.Type),
		Parent:      node.Account.ParentID,
		Active:      node.Account.Active,
		Children:    []treeNodeVM{},
	}
	for _, child := range node.Children {
		vm.Children = append(vm.Children, treeNodeView(child))
	}
	return vm
}

type balanceVM struct {
	AccountID        int64  `json:"account_id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	AccountType      string `json:"account_type"`
	Depth            int    `json:"depth"`
	Balance          string `json:"balance"`
	FormattedBalance string `json:"formatted_balance"`
}

func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseAsOf(r.URL.Query().Get("as_of"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "as_of must be YYYY-MM-DD")
		return
	}
	balances, err := h.aggregator.Balances(r.Context(), asOf)
	if err != nil {
		h.respondTreeError(w, "aggregate balances", err)
		return
	}
	depths := make(map[int64]int, len(balances))
	for _, b := range balances {
		depth := 0
		if b.Account.ParentID != nil {
			depth = depths[*b.Account.ParentID] + 1
		}
		depths[b.Account.ID] = depth
	}
	out := make([]balanceVM, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceVM{
			AccountID:        b.Account.ID,
			Code:             b.Account.Code,
			Name:             b.Account.Name,
			AccountType:      string(b.Account.Type),
			Depth:            depths[b.Account.ID],
			Balance:          b.Balance.StringFixed(2),
			FormattedBalance: b.Formatted(),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

type ledgerEntryVM struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	Reference      string `json:"reference"`
	Kind           string `json:"kind"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	RunningBalance string `json:"running_balance"`
	Formatted      string `json:"formatted_balance"`
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "account id must be numeric")
		return
	}
	asOf, err := parseAsOf(r.URL.Query().Get("as_of"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "as_of must be YYYY-MM-DD")
		return
	}

	tree, err := h.accounts.Tree(r.Context())
	if err != nil {
		h.respondTreeError(w, "build account tree", err)
		return
	}
	node := tree.Find(accountID)
	if node == nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}

	entries, err := h.recon.Reconstruct(r.Context(), node.Account, asOf)
	if err != nil {
		h.logger.Error("reconstruct ledger", slog.Int64("account_id", accountID), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Source Fetch Failed", "a source collaborator query failed")
		return
	}
	out := make([]ledgerEntryVM, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryVM{
			ID:             e.ID,
			Date:           e.Date.Format(dateLayout),
			Description:    e.Description,
			Reference:      e.Reference,
			Kind:           string(e.Kind),
			Debit:          e.Debit.StringFixed(2),
			Credit:         e.Credit.StringFixed(2),
			RunningBalance: e.RunningBalance.StringFixed(2),
			Formatted:      money.Format(e.RunningBalance),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

type transferRequest struct {
	Date        string `json:"date"`
	FromAccount int64  `json:"from_account"`
	ToAccount   int64  `json:"to_account"`
	Amount      string `json:"amount"`
	Memo        string `json:"memo"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "amount must be a decimal string")
		return
	}

	entry, err := h.journals.PostTransfer(r.Context(), journals.TransferInput{
		Date:        date,
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      amount,
		Memo:        req.Memo,
	})
	var fieldErrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.Is(err, journals.ErrSameAccount),
		errors.Is(err, journals.ErrNonPositiveAmount),
		errors.Is(err, journals.ErrUnknownAccount),
		errors.As(err, &fieldErrs):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	default:
		h.logger.Error("post transfer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"je_id":  entry.ID,
		"number": entry.Number,
		"status": string(entry.Status),
	})
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseAsOf(r.URL.Query().Get("as_of"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "as_of must be YYYY-MM-DD")
		return
	}
	filter, err := parsePondFilter(r.URL.Query().Get("pond_id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "pond_id must be numeric or \"all\"")
		return
	}

	snap, err := h.assembler.Assemble(r.Context(), asOf, filter)
	if err != nil {
		var fetchErr *ledger.SourceFetchError
		if errors.As(err, &fetchErr) {
			h.logger.Error("assemble balance sheet", slog.String("source", fetchErr.Source), slog.Any("error", err))
			httpx.Problem(w, http.StatusBadGateway, "Source Fetch Failed", "a source collaborator query failed")
			return
		}
		h.respondTreeError(w, "assemble balance sheet", err)
		return
	}

	check := reports.Check(snap)
	if !check.Balanced {
		h.logger.Warn("balance sheet out of balance",
			slog.String("as_of", asOf.Format(dateLayout)),
			slog.String("delta", check.Delta.StringFixed(2)))
	}
	httpx.JSON(w, http.StatusOK, reports.NewBalanceSheetVM(snap, check, reports.Ratios(snap)))
}

// respondTreeError distinguishes malformed chart-of-accounts errors (a data
// problem the caller can fix) from everything else.
func (h *Handler) respondTreeError(w http.ResponseWriter, op string, err error) {
	var cycleErr *accounts.CycleError
	var danglingErr *accounts.DanglingParentError
	if errors.As(err, &cycleErr) || errors.As(err, &danglingErr) {
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusUnprocessableEntity, "Malformed Chart of Accounts", err.Error())
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}

// parseAsOf interprets the as_of query parameter; empty means today.
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, raw)
}

// parsePondFilter interprets the pond_id query parameter; empty and "all"
// span every pond.
func parsePondFilter(raw string) (reports.PondFilter, error) {
	if raw == "" || raw == "all" {
		return reports.AllPonds(), nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return reports.PondFilter{}, err
	}
	return reports.OnePond(id), nil
}
