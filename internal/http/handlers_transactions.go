package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"saldo/internal/core"
	"saldo/internal/export"
	applog "saldo/internal/log"
	"saldo/internal/services"
)

// transactionRoutes binds the shared handlers to one kind.
type transactionRoutes struct {
	kind core.Kind
	noun string
}

var (
	incomeRoutes  = transactionRoutes{kind: core.KindIncome, noun: "Income"}
	expenseRoutes = transactionRoutes{kind: core.KindExpense, noun: "Expense"}
)

// transactionRequest accepts both label spellings; only the one matching
// the route's kind is read.
type transactionRequest struct {
	Source string     `json:"source"`
	Title  string     `json:"title"`
	Icon   string     `json:"icon"`
	Amount flexString `json:"amount"`
	Date   string     `json:"date"`
}

func (req transactionRequest) label(kind core.Kind) string {
	if kind == core.KindIncome {
		return req.Source
	}
	return req.Title
}

// transactionResponse renders a record with its kind-specific label field.
func transactionResponse(t core.Transaction) map[string]any {
	out := map[string]any{
		"id":        t.ID,
		"userId":    t.OwnerID,
		"type":      t.Kind,
		"icon":      t.IconOrDefault(),
		"amount":    t.Amount,
		"date":      t.Date.String(),
		"createdAt": t.CreatedAt.UTC().Format(time.RFC3339),
	}
	out[t.Kind.LabelField()] = t.Label
	return out
}

func (s *Server) handleAddTransaction(rt transactionRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}

		label := sanitizeInput(req.label(rt.kind))
		if label == "" || strings.TrimSpace(string(req.Amount)) == "" || strings.TrimSpace(req.Date) == "" {
			writeError(w, r, applog.OpCreate, badRequest("All fields are required", nil))
			return
		}
		amount, err := parseAmount(req.Amount)
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}

		created, err := s.transactions.Add(r.Context(), ownerID(r), rt.kind, services.NewTransaction{
			Label:  label,
			Icon:   sanitizeInput(req.Icon),
			Amount: amount,
			Date:   date,
		})
		if err != nil {
			writeError(w, r, applog.OpCreate, err)
			return
		}
		Created(transactionResponse(created)).Write(w)
	}
}

func (s *Server) handleListTransactions(rt transactionRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.transactions.List(r.Context(), ownerID(r), rt.kind)
		if err != nil {
			writeError(w, r, applog.OpList, err)
			return
		}
		out := make([]map[string]any, 0, len(records))
		for _, t := range records {
			out = append(out, transactionResponse(t))
		}
		OK(out).Write(w)
	}
}

func (s *Server) handleDeleteTransaction(rt transactionRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.transactions.Delete(r.Context(), ownerID(r), rt.kind, r.PathValue("id"))
		switch {
		case errors.Is(err, core.ErrNotFound):
			NotFoundError(rt.noun + " not found").Write(w)
		case err != nil:
			writeError(w, r, applog.OpDelete, err)
		default:
			NewJSONResponse().Message(rt.noun + " deleted successfully").Write(w)
		}
	}
}

// handleDownloadTransactions streams the owner's records as a workbook.
// ?startDate and ?endDate narrow the export; both are inclusive.
func (s *Server) handleDownloadTransactions(rt transactionRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start, err := queryDate(q, "startDate")
		if err != nil {
			writeError(w, r, applog.OpExport, err)
			return
		}
		end, err := queryDate(q, "endDate")
		if err != nil {
			writeError(w, r, applog.OpExport, err)
			return
		}

		records, err := s.transactions.Export(r.Context(), ownerID(r), rt.kind, services.DateRange{Start: start, End: end})
		if err != nil {
			writeError(w, r, applog.OpExport, err)
			return
		}
		if len(records) == 0 {
			NotFoundError(fmt.Sprintf("No %s records found", rt.kind)).Write(w)
			return
		}

		data, err := export.TransactionsWorkbook(rt.kind, records)
		if err != nil {
			writeError(w, r, applog.OpExport, err)
			return
		}

		applog.FromContext(r.Context()).InfoContext(r.Context(), "Workbook exported",
			applog.NewFields().WithOperation(applog.OpExport).WithOwner(ownerID(r)).Args()...)

		h := w.Header()
		h.Set("Content-Type", export.ContentType)
		h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(rt.kind, s.clock.Now())))
		h.Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
