package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/tsudoi-app/tsudoi/app/dto"
	"github.com/tsudoi-app/tsudoi/app/middleware"
	businessflow "github.com/tsudoi-app/tsudoi/business_flow"
	"github.com/tsudoi-app/tsudoi/utils"
)

type FeedHandlerInterface interface {
	HomeFeed(c fiber.Ctx) error
}

type FeedHandler struct {
	flow     businessflow.HomeFeedFlow
	validate *validator.Validate
}

func NewFeedHandler(flow businessflow.HomeFeedFlow) FeedHandlerInterface {
	return &FeedHandler{
		flow:     flow,
		validate: validator.New(),
	}
}

func (h *FeedHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: errorCode, Details: details},
	})
}

func (h *FeedHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

// HomeFeed returns the personalized home carousel for the authenticated member
func (h *FeedHandler) HomeFeed(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/v1/feed/home")

	viewerUUIDStr, _ := c.Locals(middleware.LocalsMemberUUID).(string)
	viewerUUID, err := uuid.Parse(viewerUUIDStr)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid member identity", "INVALID_MEMBER_IDENTITY", nil)
	}

	var req dto.HomeFeedRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY_PARAMETERS", nil)
	}
	if err := h.validate.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	res, err := h.flow.BuildHomeFeed(ctx, viewerUUID, req.Placement, metadata)
	if err != nil {
		log.Println("Home feed failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build home feed", "HOME_FEED_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Home feed retrieved", res)
}

func (h *FeedHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *FeedHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
