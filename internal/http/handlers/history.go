package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"storefront/pkg/zip"
)

func (a *App) History(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"purchases": nonNil(a.Ledger.History()),
		"stats":     a.Ledger.Stats(),
	})
}

// HistoryExport returns a zip with one JSON receipt per purchase, oldest
// first.
func (a *App) HistoryExport(w http.ResponseWriter, r *http.Request) {
	history := a.Ledger.History()
	files := make([]zip.File, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		p := history[i]
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			a.fail(w, r, fmt.Errorf("encode receipt %s: %w", p.ID, err))
			return
		}
		files = append(files, zip.File{
			Name:     fmt.Sprintf("receipts/%04d-%s.json", len(history)-i, p.ID),
			Data:     data,
			Modified: p.Timestamp,
		})
	}
	archive, err := zip.Archive(files)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
