package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Upload handles POST /upload: proxies a document to the ingestion
// endpoint. Success means the backend accepted the file, nothing more;
// the refetch after a fixed delay is a best-effort approximation of
// "ingestion probably finished", not a completion signal. Failures are
// a transient note near the control and never touch dashboard data.
func (h *Handler) Upload(c echo.Context) error {
	ctrl := h.controller(c)

	file, err := c.FormFile("file")
	if err != nil {
		ctrl.SetUploadNote("Upload failed: no file selected")
		return redirectHome(c)
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("Error opening upload %s: %v", file.Filename, err)
		ctrl.SetUploadNote(fmt.Sprintf("Upload failed: %v", err))
		return redirectHome(c)
	}
	defer src.Close()

	if err := h.gateway.Upload(c.Request().Context(), file.Filename, src); err != nil {
		log.Printf("Error uploading %s: %v", file.Filename, err)
		ctrl.SetUploadNote(fmt.Sprintf("Upload failed: %v", err))
		return redirectHome(c)
	}

	log.Printf("Uploaded %s for ingestion", file.Filename)
	ctrl.SetUploadNote(fmt.Sprintf("Uploaded %s — data will refresh shortly", file.Filename))
	time.AfterFunc(h.cfg.UploadRefreshDelay, ctrl.Refresh)

	return redirectHome(c)
}
