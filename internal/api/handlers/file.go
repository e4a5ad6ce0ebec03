package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/access"
	"github.com/rohits-web03/sharevault/internal/apperrors"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/registry"
	"github.com/rohits-web03/sharevault/internal/transfer"
	"github.com/rohits-web03/sharevault/internal/utils"
)

// file parts larger than this are spooled to temporary files
const multipartMemory = 1 << 20

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type FileHandler struct {
	pipeline      *transfer.Pipeline
	registry      *registry.Registry
	maxUploadSize int64
	l             *log.Entry
}

func NewFileHandler(p *transfer.Pipeline, reg *registry.Registry, maxUploadSize int64, l *log.Entry) *FileHandler {
	return &FileHandler{
		pipeline:      p,
		registry:      reg,
		maxUploadSize: maxUploadSize,
		l:             l.WithField("component", "file_handler"),
	}
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	FileURL string `json:"fileURL"`
	FileID  string `json:"fileId"`
}

type FileSummary struct {
	FileID       string            `json:"fileID"`
	FileName     string            `json:"fileName"`
	DownloadLink string            `json:"downloadLink"`
	AccessType   models.AccessType `json:"accessType"`
}

type ListResponse struct {
	Success bool          `json:"success"`
	Files   []FileSummary `json:"files"`
}

type AccessUpdateRequest struct {
	AccessType string `json:"accessType"`
}

// UploadFile godoc
// @Summary Upload a file
// @Description Stores one file and records its metadata; accessType defaults to private
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param accessType formData string false "public or private"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 413 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /files/upload [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	file, header, err := parseUpload(w, r, h.maxUploadSize)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	switch {
	case errors.Is(err, errUploadTooLarge):
		h.tooLarge(w)
		return
	case errors.Is(err, errNoFile):
		badRequest(w, "No file uploaded")
		return
	case err != nil:
		badRequest(w, "Invalid file upload form")
		return
	}
	defer file.Close()

	f, err := h.pipeline.Upload(r.Context(), transfer.UploadRequest{
		Owner:        identity,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		AccessType:   r.FormValue("accessType"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		respondError(w, h.l, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		FileURL: f.FileURL,
		FileID:  f.ID,
	})
}

// ListFiles godoc
// @Summary List visible files
// @Description Public files plus the caller's own files, oldest first
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse
// @Failure 401 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	files, err := h.registry.ListVisibleTo(r.Context(), identity)
	if err != nil {
		respondError(w, h.l, err)
		return
	}

	summaries := make([]FileSummary, 0, len(files))
	for _, f := range files {
		summaries = append(summaries, FileSummary{
			FileID:       f.ID,
			FileName:     f.OriginalName,
			DownloadLink: "/files/download/" + f.ID,
			AccessType:   f.AccessType,
		})
	}
	utils.WriteJSON(w, http.StatusOK, ListResponse{Success: true, Files: summaries})
}

// GetFile godoc
// @Summary Get file metadata
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {object} models.File
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /files/{fileId} [get]
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	f, err := h.registry.Get(r.Context(), r.PathValue("fileId"))
	if err != nil {
		respondError(w, h.l, err)
		return
	}
	if !access.CanRead(f, identity) {
		respondError(w, h.l, apperrors.New(apperrors.KindForbidden, "files.get", "Access denied"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, f)
}

// DownloadFile godoc
// @Summary Download a file
// @Description Streams the file content as an attachment
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {file} file
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /files/download/{fileId} [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	d, err := h.pipeline.Download(r.Context(), r.PathValue("fileId"), identity)
	if err != nil {
		respondError(w, h.l, err)
		return
	}
	defer d.Body.Close()

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.FileName}))
	w.Header().Set("Content-Length", strconv.FormatInt(d.Size, 10))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	// Headers are gone by now; a short body against Content-Length is how the
	// client learns the transfer failed.
	if n, err := io.Copy(w, d.Body); err != nil {
		h.l.WithError(err).WithFields(log.Fields{
			"file_id": d.File.ID,
			"written": n,
		}).Warn("download interrupted")
	}
}

// DeleteFile godoc
// @Summary Delete a file
// @Description Removes the stored content and then the record; owner only
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /files/{fileId} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.pipeline.Delete(r.Context(), r.PathValue("fileId"), identity); err != nil {
		respondError(w, h.l, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File deleted successfully",
	})
}

// UpdateAccess godoc
// @Summary Change file visibility
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Param body body AccessUpdateRequest true "New access type"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /files/{fileId}/access [patch]
func (h *FileHandler) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var input AccessUpdateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<10)).Decode(&input); err != nil {
		badRequest(w, "Invalid input")
		return
	}

	f, err := h.registry.UpdateAccessType(r.Context(), r.PathValue("fileId"), input.AccessType, identity)
	if err != nil {
		respondError(w, h.l, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File access type updated successfully.",
		Data:    map[string]string{"fileId": f.ID, "accessType": string(f.AccessType)},
	})
}

var (
	errUploadTooLarge = errors.New("upload exceeds the size limit")
	errNoFile         = errors.New("no file part in upload")
)

// parseUpload reads the multipart form and opens its "file" part. Parts above
// multipartMemory live in temporary files, so the returned file is seekable
// and its size is known before any byte reaches blob storage. The caller
// closes the file and removes the form.
func parseUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, errUploadTooLarge
		}
		return nil, nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errNoFile
	}
	if header.Size > maxSize {
		_ = file.Close()
		return nil, nil, errUploadTooLarge
	}
	return file, header, nil
}

func (h *FileHandler) tooLarge(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusRequestEntityTooLarge, utils.Payload{
		Success: false,
		Kind:    string(apperrors.KindInvalidArgument),
		Message: "File exceeds the upload limit of " + strconv.FormatInt(h.maxUploadSize, 10) + " bytes",
	})
}
