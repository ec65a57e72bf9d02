package api

import (
	"context"
	"net/http"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerRuleProvider interface {
	Search(ctx context.Context, customerID, accountNo string) ([]resp.RuleSetSummaryItem, error)
	GetSet(ctx context.Context, customerID, accountNo, transferType string) (*resp.RuleSetDetail, error)
	SaveSet(ctx context.Context, r req.SaveRuleSetRequest, operator string) error
	DeleteSet(ctx context.Context, customerID, accountNo, transferType string, operator string) error
}

type CustomerRuleHandler struct {
	service CustomerRuleProvider
}

func NewCustomerRuleHandler(service CustomerRuleProvider) *CustomerRuleHandler {
	return &CustomerRuleHandler{service: service}
}

func (h *CustomerRuleHandler) SearchRuleSets(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("customer_id"), c.Query("account_no"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CustomerRuleHandler) GetRuleSet(c *gin.Context) {
	var r req.RuleSetKeyRequest
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, account_no and transfer_type are required"})
		return
	}
	detail, err := h.service.GetSet(c.Request.Context(), r.CustomerID, r.AccountNo, r.TransferType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CustomerRuleHandler) SaveRuleSet(c *gin.Context) {
	var r req.SaveRuleSetRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON format error"})
		return
	}
	operator := service.GetOperator(c.Request.Context())
	if err := h.service.SaveSet(c.Request.Context(), r, operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.SuccessResponse{Success: true})
}

func (h *CustomerRuleHandler) DeleteRuleSet(c *gin.Context) {
	var r req.RuleSetKeyRequest
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, account_no and transfer_type are required"})
		return
	}
	operator := service.GetOperator(c.Request.Context())
	if err := h.service.DeleteSet(c.Request.Context(), r.CustomerID, r.AccountNo, r.TransferType, operator); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.SuccessResponse{Success: true})
}
