package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gyeh/apptbill/internal/config"
	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/normalize"
	"github.com/gyeh/apptbill/internal/tableread"
	"github.com/gyeh/apptbill/internal/tablewrite"
	"github.com/gyeh/apptbill/internal/transform"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handleTransform reads the multipart "file" field, transforms it and returns
// the billing sheet as an attachment. The optional "format" field selects csv
// (default), xlsx or parquet.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.UploadLimit()
	tooLarge := fmt.Sprintf("upload exceeds the %d byte limit", limit)
	if r.ContentLength > limit {
		s.respondError(w, r, http.StatusRequestEntityTooLarge, tooLarge,
			fmt.Errorf("content length %d over limit", r.ContentLength))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, tooLarge, err)
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "invalid multipart form", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := model.FormatCSV
	if v := r.FormValue("format"); v != "" {
		f, err := model.ParseFormat(v)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
			return
		}
		format = f
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "no file provided", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "could not read upload", err)
		return
	}

	table, inFormat, err := tableread.ReadBytes(data)
	if err != nil {
		s.respondError(w, r, statusFor(err), "could not read export: "+err.Error(), err)
		return
	}
	rows, stats, err := transform.Records(table)
	if err != nil {
		s.respondError(w, r, statusFor(err), err.Error(), err)
		return
	}

	var buf bytes.Buffer
	if err := tablewrite.Write(&buf, format, rows); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "could not encode billing sheet", err)
		return
	}

	runID := uuid.New().String()
	s.log.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("run_id", runID).
		Str("upload", header.Filename).
		Str("sha256", normalize.BytesHash(data)).
		Str("input_format", string(inFormat)).
		Str("output_format", string(format)).
		Int64("rows_read", stats.RowsRead).
		Int64("rows_written", stats.RowsWritten).
		Int64("unparsed_dates", stats.UnparsedDates).
		Msg("upload transformed")

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.%s"`, config.DefaultOutputName, format))
	w.Header().Set("X-Run-ID", runID)
	w.Write(buf.Bytes())
}

// statusFor maps transform failures to 422 when the upload parsed but cannot be
// billed, and 400 when it could not be decoded at all.
func statusFor(err error) int {
	var rowErr *normalize.RowError
	switch {
	case errors.Is(err, model.ErrMissingClientName),
		errors.Is(err, tableread.ErrEmptyInput),
		errors.As(err, &rowErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// respondError logs err with the request ID and writes msg as plain text.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	s.log.Warn().
		Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status", status).
		Msg("transform request failed")
	http.Error(w, msg, status)
}
