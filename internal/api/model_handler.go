package api

import (
	"context"
	"net/http"

	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

type ModelProvider interface {
	ListVersions(ctx context.Context) ([]resp.ModelVersionItem, error)
	GetVersion(ctx context.Context, id uint64) (*resp.ModelVersionItem, error)
	Activate(ctx context.Context, id uint64, operator string) error
	ListTrainingRuns(ctx context.Context) ([]resp.TrainingRunItem, error)
}

type ModelHandler struct {
	service ModelProvider
}

func NewModelHandler(service ModelProvider) *ModelHandler {
	return &ModelHandler{service: service}
}

func (h *ModelHandler) ListModelVersions(c *gin.Context) {
	versions, err := h.service.ListVersions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *ModelHandler) GetModelVersion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	version, err := h.service.GetVersion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

func (h *ModelHandler) ActivateModelVersion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	operator := service.GetOperator(c.Request.Context())
	if err := h.service.Activate(c.Request.Context(), id, operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.SuccessResponse{Success: true})
}

func (h *ModelHandler) ListTrainingRuns(c *gin.Context) {
	runs, err := h.service.ListTrainingRuns(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}
