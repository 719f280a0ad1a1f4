package controller

import (
	"errors"
	"fmt"
	"net/http"

	"smell-bot/internal/model"
	"smell-bot/internal/service"
	"smell-bot/internal/smells"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SmellController handles code smell detection HTTP endpoints
type SmellController struct {
	scanner *service.Scanner
	logger  *zap.Logger
}

func NewSmellController(scanner *service.Scanner, logger *zap.Logger) *SmellController {
	return &SmellController{
		scanner: scanner,
		logger:  logger,
	}
}

// ThresholdsRequest overrides the configured thresholds for one request.
// Omitted fields keep their configured value.
type ThresholdsRequest struct {
	LongMethod    *int `json:"long_method" binding:"omitempty,gte=0"`
	LongParameter *int `json:"long_parameter" binding:"omitempty,gte=0"`
}

// DetectSmellsRequest is the request body for method-level detection
type DetectSmellsRequest struct {
	Methods    []*model.MethodFact `json:"methods" binding:"required,min=1"`
	Thresholds *ThresholdsRequest  `json:"thresholds"`
}

// DetectSmells handles POST /api/v1/detectSmells
func (sc *SmellController) DetectSmells(c *gin.Context) {
	var req DetectSmellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var override *model.Thresholds
	if req.Thresholds != nil {
		t := sc.scanner.Thresholds()
		if req.Thresholds.LongMethod != nil {
			t.LongMethod = *req.Thresholds.LongMethod
		}
		if req.Thresholds.LongParameter != nil {
			t.LongParameter = *req.Thresholds.LongParameter
		}
		override = &t
	}

	sc.logger.Info("Detecting smells", zap.Int("methods", len(req.Methods)))

	result, err := sc.scanner.DetectMethods(c.Request.Context(), req.Methods, override)
	if err != nil {
		sc.fail(c, "Detection failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScanDirectoryRequest is the request body for directory scans
type ScanDirectoryRequest struct {
	Path           string `json:"path" binding:"required"`
	IncludeMethods bool   `json:"include_methods"`
}

// ScanDirectory handles POST /api/v1/scanDirectory
func (sc *SmellController) ScanDirectory(c *gin.Context) {
	var req ScanDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.logger.Info("Scanning directory", zap.String("path", req.Path))

	result, err := sc.scanner.ScanDirectory(c.Request.Context(), req.Path)
	if err != nil {
		sc.fail(c, "Scan failed", err)
		return
	}

	if !req.IncludeMethods {
		result.Methods = nil
	}
	c.JSON(http.StatusOK, result)
}

// fail maps caller mistakes to 400 and everything else to 500
func (sc *SmellController) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, smells.ErrInvalidArgument) || errors.Is(err, service.ErrInvalidPath) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf("%s: %v", msg, err),
	})
}
