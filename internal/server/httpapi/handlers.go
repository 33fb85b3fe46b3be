package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/dmitrijs2005/docsync/internal/server/models"
	"github.com/dmitrijs2005/docsync/internal/transport"
)

func (api *API) Ping(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (api *API) RegisterDevice(c *gin.Context) {
	var req transport.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(transport.CodeValidation, "malformed request body"))
		return
	}

	_, err := api.devices.Register(c.Request.Context(), req.DeviceID, []byte(req.Secret))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusConflict, errorResponse(transport.CodeValidation, "device id already taken"))
		case errors.Is(err, common.ErrValidation):
			c.JSON(http.StatusBadRequest, errorResponse(transport.CodeValidation, err.Error()))
		default:
			api.logger.Error(c.Request.Context(), "device registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, errorResponse(transport.CodeInternal, "internal error"))
		}
		return
	}

	c.Status(http.StatusCreated)
}

func (api *API) LoginDevice(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(transport.CodeValidation, "malformed request body"))
		return
	}

	token, err := api.devices.Login(c.Request.Context(), req.DeviceID, []byte(req.Secret))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, errorResponse(transport.CodeValidation, "bad credentials"))
			return
		}
		api.logger.Error(c.Request.Context(), "device login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse(transport.CodeInternal, "internal error"))
		return
	}

	c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token})
}

// Sync ingests one uploaded document. Both a fresh insert and an idempotent
// duplicate answer 200 with status "success"; the client does not
// distinguish them.
func (api *API) Sync(c *gin.Context) {
	var req transport.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(transport.CodeValidation, "malformed request body"))
		return
	}

	deviceID := c.GetString(deviceIDKey)

	attachments := make([]models.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, models.Attachment{
			Seq:      a.Seq,
			MimeType: a.MimeType,
			Data:     a.Data,
		})
	}

	res, err := api.records.Ingest(c.Request.Context(), deviceID, req.TransactionID, req.Metadata, attachments)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrNoPages):
			c.JSON(http.StatusUnprocessableEntity, errorResponse(transport.CodeValidation, err.Error()))
		default:
			api.logger.Error(c.Request.Context(), "ingest failed",
				"transaction_id", req.TransactionID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, errorResponse(transport.CodeInternal, "internal error"))
		}
		return
	}

	message := "created"
	if res.Duplicate {
		message = "duplicate transaction, returning existing record"
	}

	c.JSON(http.StatusOK, transport.SyncResponse{
		Status:         transport.StatusSuccess,
		RemoteRecordID: res.RecordID,
		Message:        message,
	})
}

func errorResponse(code, message string) transport.ErrorResponse {
	return transport.ErrorResponse{Status: transport.StatusError, Code: code, Message: message}
}
