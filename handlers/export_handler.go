package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/golf-admin/export"
	"github.com/Dosada05/golf-admin/services"
	"github.com/Dosada05/golf-admin/storage"
)

// ArchiveURLHeader carries the public URL of the archived copy, when one was stored.
const ArchiveURLHeader = "X-Archive-URL"

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// Download godoc
// @Summary Download a report as an Excel workbook
// @Tags reports
// @Description Reports: golfers, check-in, payments, foursomes, contacts, full-report. Golfer reports use the same filter and sort parameters as the golfer list.
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tournamentID path int true "Tournament ID"
// @Param report path string true "Report name"
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} map[string]string "Unknown report"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/exports/{report} [get]
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	report, err := export.ParseReport(chi.URLParam(r, "report"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter, sort, err := parseRosterQuery(r)
	if err != nil {
		respondRosterQueryError(w, r, err)
		return
	}

	res, err := h.exportService.Export(r.Context(), services.ExportRequest{
		TournamentID: tid,
		Report:       report,
		Filter:       filter,
		Sort:         sort,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", storage.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	if res.ArchiveURL != "" {
		w.Header().Set(ArchiveURLHeader, res.ArchiveURL)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
