// Package presenter renders store state for a terminal and exports it to XLSX.
package presenter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/pagination"
	"tokoadmin/internal/store"
	"tokoadmin/internal/workflow"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RequestsTable writes the current page of requests as a table.
func RequestsTable(w io.Writer, st store.State) error {
	switch {
	case st.IsLoading:
		_, err := fmt.Fprintln(w, "Loading restock requests...")
		return err
	case st.IsFailure && len(st.Requests) == 0:
		_, err := fmt.Fprintln(w, "Could not load restock requests.")
		return err
	case len(st.Requests) == 0:
		_, err := fmt.Fprintln(w, "No restock requests found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NO\tID\tOUTLET\tITEMS\tSTATUS\tCREATED\tACTIONS")
	for i, req := range st.Requests {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			st.Meta.From+i,
			req.ID,
			outletName(req),
			len(req.Items),
			req.Status,
			req.CreatedAt.Local().Format(timeLayout),
			actions(req.Status),
		)
	}
	return tw.Flush()
}

// RequestDetail writes one request with its items.
func RequestDetail(w io.Writer, req models.RestockRequest) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", req.ID)
	fmt.Fprintf(tw, "Outlet:\t%s\n", outletName(req))
	if req.Outlet.Address != "" {
		fmt.Fprintf(tw, "Address:\t%s\n", req.Outlet.Address)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", req.Status)
	fmt.Fprintf(tw, "Created:\t%s\n", req.CreatedAt.Local().Format(timeLayout))
	if req.ReviewedAt != nil {
		fmt.Fprintf(tw, "Reviewed:\t%s by %s\n", req.ReviewedAt.Local().Format(timeLayout), req.ReviewedBy)
	}
	if req.RejectionReason != nil {
		fmt.Fprintf(tw, "Rejection reason:\t%s\n", *req.RejectionReason)
	}
	fmt.Fprintf(tw, "Actions:\t%s\n", actions(req.Status))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "#\tPRODUCT DETAIL\tQTY\tUNIT\tREASON")
	for i, item := range req.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", i+1, item.ProductDetailID, item.RequestedStock, item.Unit, deref(item.Reason))
	}
	return tw.Flush()
}

// Pager writes the page buttons, e.g. "« 3 4 [5] 6 7 »". Disabled arrows are dropped.
func Pager(w io.Writer, ctl pagination.Control) error {
	parts := make([]string, 0, len(ctl.Pages)+2)
	if !ctl.PrevDisabled {
		parts = append(parts, "«")
	}
	for _, p := range ctl.Pages {
		if p == ctl.Current {
			parts = append(parts, "["+strconv.Itoa(p)+"]")
			continue
		}
		parts = append(parts, strconv.Itoa(p))
	}
	if !ctl.NextDisabled {
		parts = append(parts, "»")
	}
	_, err := fmt.Fprintf(w, "%s  (page %d of %d)\n", strings.Join(parts, " "), ctl.Current, ctl.Last)
	return err
}

// Notice writes the store notice and any field errors. Nothing is written when both are empty.
func Notice(w io.Writer, st store.State) error {
	if st.Notice.Text != "" {
		prefix := "ok"
		if st.Notice.Level == store.NoticeError {
			prefix = "error"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", prefix, st.Notice.Text); err != nil {
			return err
		}
	}
	for _, field := range sortedKeys(st.FieldErrors) {
		if _, err := fmt.Fprintf(w, "  %s %s\n", field, strings.Join(st.FieldErrors[field], ", ")); err != nil {
			return err
		}
	}
	return nil
}

// ProductsTable writes a page of products, one row per unit with its price.
func ProductsTable(w io.Writer, page models.Page[models.Product]) error {
	if len(page.Data) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT\tDETAIL ID\tUNIT\tPRICE\tIMAGE")
	for _, p := range page.Data {
		if len(p.Details) == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%s\n", p.Name, p.Image)
			continue
		}
		for _, d := range p.Details {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, d.ID, d.Unit, strconv.FormatFloat(d.Price, 'f', -1, 64), p.Image)
		}
	}
	return tw.Flush()
}

// OutletsTable writes the outlets a restock request can be filed for.
func OutletsTable(w io.Writer, outlets []models.Warehouse) error {
	if len(outlets) == 0 {
		_, err := fmt.Fprintln(w, "No outlets found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS")
	for _, o := range outlets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Name, o.Address)
	}
	return tw.Flush()
}

func outletName(req models.RestockRequest) string {
	if req.Outlet.Name != "" {
		return req.Outlet.Name
	}
	return req.OutletID
}

func actions(s models.RestockStatus) string {
	allowed := workflow.Allowed(s)
	if len(allowed) == 0 {
		return "-"
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return strings.Join(names, ",")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
