package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"datavista/internal/chart"
	"datavista/internal/config"
	"datavista/internal/dataset"
	"datavista/internal/render"
	"datavista/internal/session"
	"datavista/internal/suggest"
	"datavista/pkg/logger"
)

const previewRows = 5

// API provides handlers for the visualization service.
type API struct {
	store     *session.Store
	suggester *suggest.Suggester
	output    config.OutputConfig
	maxUpload int64
	logger    *logger.Logger
}

// NewAPI creates a new API handler.
func NewAPI(store *session.Store, suggester *suggest.Suggester, cfg *config.AppConfig, log *logger.Logger) *API {
	return &API{
		store:     store,
		suggester: suggester,
		output:    cfg.Output,
		maxUpload: cfg.Server.MaxUploadBytes,
		logger:    log,
	}
}

// datasetView is the schema + preview block shared by several responses.
type datasetView struct {
	Name     string     `json:"name"`
	Columns  []string   `json:"columns"`
	RowCount int        `json:"row_count"`
	Preview  [][]string `json:"preview"`
}

func viewOf(ds *dataset.Dataset) *datasetView {
	return &datasetView{
		Name:     ds.Name,
		Columns:  ds.Columns,
		RowCount: ds.NumRows(),
		Preview:  ds.Head(previewRows),
	}
}

// UploadHandler accepts a multipart spreadsheet or CSV upload and opens a
// session for it. Multi-sheet workbooks return the sheet list and wait for
// a selection; everything else returns the schema and preview directly.
func (a *API) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if a.maxUpload > 0 && fileHeader.Size > a.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	src, err := dataset.Open(fileHeader.Filename, data)
	if err != nil {
		a.logger.WithError(err).Warn("Upload could not be parsed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file could not be parsed as CSV or xlsx"})
		return
	}

	sess, err := a.store.Create(src)
	if err != nil {
		src.Close()
		a.logger.WithError(err).Error("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	resp := gin.H{
		"session_id": sess.ID,
		"format":     src.Format,
	}
	if sheets := src.SheetNames(); len(sheets) > 0 {
		resp["sheets"] = sheets
	}
	if sess.Dataset != nil {
		resp["dataset"] = viewOf(sess.Dataset)
	}
	a.logger.WithPayload(map[string]interface{}{
		"session_id": sess.ID,
		"file":       fileHeader.Filename,
	}).Info("Upload accepted")
	c.JSON(http.StatusCreated, resp)
}

// GetDatasetHandler returns the active dataset's schema and preview.
func (a *API) GetDatasetHandler(c *gin.Context) {
	sess, ds, ok := a.activeDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"dataset":    viewOf(ds),
	})
}

// SelectSheetHandler makes the named workbook sheet the session's active
// dataset.
func (a *API) SelectSheetHandler(c *gin.Context) {
	var payload struct {
		Sheet string `json:"sheet" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	ds, err := a.store.SelectSheet(c.Param("id"), payload.Sheet)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": c.Param("id"),
		"dataset":    viewOf(ds),
	})
}

// SuggestHandler asks the language model for visualization suggestions.
// Failures are embedded in the suggestion text so the session continues.
func (a *API) SuggestHandler(c *gin.Context) {
	_, ds, ok := a.activeDataset(c)
	if !ok {
		return
	}
	text := a.suggester.Suggest(c.Request.Context(), ds)
	c.JSON(http.StatusOK, gin.H{
		"enabled":     a.suggester.Enabled(),
		"suggestions": text,
	})
}

// DeleteSessionHandler removes a session, closing its upload source.
func (a *API) DeleteSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if !a.store.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	a.logger.WithField("session_id", id).Info("Session deleted")
	c.Status(http.StatusNoContent)
}

// chartPayload is the chart request body.
type chartPayload struct {
	Kind    string `json:"kind" binding:"required"`
	Columns struct {
		Task  string  `json:"task"`
		Start string  `json:"start"`
		End   string  `json:"end"`
		X     string  `json:"x"`
		Y     string  `json:"y"`
		Value string  `json:"value"`
		Color *string `json:"color"`
	} `json:"columns"`
	ColorScale string `json:"color_scale"`
	Export     struct {
		HTML     bool   `json:"html"`
		PNG      bool   `json:"png"`
		Filename string `json:"filename"`
	} `json:"export"`
}

func (p *chartPayload) toRequest() *chart.Request {
	req := &chart.Request{
		Kind:       chart.Kind(p.Kind),
		Task:       p.Columns.Task,
		Start:      p.Columns.Start,
		End:        p.Columns.End,
		X:          p.Columns.X,
		Y:          p.Columns.Y,
		Value:      p.Columns.Value,
		ColorScale: p.ColorScale,
	}
	// An empty color string means the selection was left blank.
	if p.Columns.Color != nil && *p.Columns.Color != "" {
		req.Color = chart.Column(*p.Columns.Color)
	}
	return req
}

// CreateChartHandler resolves and renders a chart for the session's active
// dataset, optionally persisting it to HTML and PNG.
func (a *API) CreateChartHandler(c *gin.Context) {
	_, ds, ok := a.activeDataset(c)
	if !ok {
		return
	}

	var payload chartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	spec, err := chart.Resolve(ds, payload.toRequest())
	if err != nil {
		status, code := classifyResolveError(err)
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	optionJSON, err := render.OptionsJSON(spec)
	if err != nil {
		a.logger.WithError(err).Error("Failed to build chart options")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart", "code": "collaborator_failure"})
		return
	}

	resp := gin.H{
		"kind":   spec.Kind,
		"title":  spec.Title,
		"roles":  spec.Roles,
		"option": json.RawMessage(optionJSON),
	}

	if payload.Export.HTML || a.output.SavePNG || payload.Export.PNG {
		if payload.Export.HTML {
			path, err := render.WriteHTML(spec, a.output.Dir, exportName(payload.Export.Filename, ".html"))
			if err != nil {
				a.logger.WithError(err).Error("Failed to save chart HTML")
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "collaborator_failure"})
				return
			}
			resp["html_path"] = path
		}
		if payload.Export.PNG || (payload.Export.HTML && a.output.SavePNG) {
			path, err := render.WritePNG(spec, a.output.Dir, exportName(payload.Export.Filename, ".png"))
			if err != nil {
				// Raster export is best-effort: the HTML artifact and the
				// in-band option document are already produced.
				a.logger.WithError(err).Warn("PNG export failed")
				resp["png_error"] = err.Error()
			} else {
				resp["png_path"] = path
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// activeDataset fetches the session and its active dataset, writing the
// error response itself when either is missing. The dataset comes from the
// store's synchronized accessor so a concurrent sheet selection cannot race
// the read.
func (a *API) activeDataset(c *gin.Context) (*session.Session, *dataset.Dataset, bool) {
	sess, ds := a.store.ActiveDataset(c.Param("id"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, nil, false
	}
	if ds == nil {
		c.JSON(http.StatusConflict, gin.H{"error": session.ErrNoDataset.Error()})
		return nil, nil, false
	}
	return sess, ds, true
}

// classifyResolveError maps the resolver's error taxonomy to an HTTP status
// and a machine-readable code.
func classifyResolveError(err error) (int, string) {
	var unknownCol *chart.UnknownColumnError
	var badScale *chart.UnsupportedColorScaleError
	var badTemporal *chart.InvalidTemporalColumnError
	var missing *chart.MissingSelectionError
	var collab *chart.CollaboratorError

	switch {
	case errors.As(err, &unknownCol):
		return http.StatusUnprocessableEntity, "unknown_column"
	case errors.As(err, &badScale):
		return http.StatusUnprocessableEntity, "unsupported_color_scale"
	case errors.As(err, &badTemporal):
		return http.StatusUnprocessableEntity, "invalid_temporal_column"
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, "missing_selection"
	case errors.Is(err, chart.ErrEmptyDataset):
		return http.StatusUnprocessableEntity, "empty_dataset"
	case errors.Is(err, chart.ErrUnsupportedKind):
		return http.StatusBadRequest, "unsupported_kind"
	case errors.As(err, &collab):
		return http.StatusBadGateway, "collaborator_failure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func exportName(filename, ext string) string {
	if filename == "" {
		return ""
	}
	if len(filename) > len(ext) && filename[len(filename)-len(ext):] == ext {
		return filename
	}
	return filename + ext
}
