package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketing-api/internal/api/dto"
	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/service"
)

// WorkOrdersHandler manages work order endpoints.
type WorkOrdersHandler struct {
	service *service.WorkOrderService
}

// NewWorkOrdersHandler constructs handler.
func NewWorkOrdersHandler(workOrderService *service.WorkOrderService) *WorkOrdersHandler {
	return &WorkOrdersHandler{service: workOrderService}
}

// CreateWorkOrder POST /workorders.
func (h *WorkOrdersHandler) CreateWorkOrder(c *fiber.Ctx) error {
	username, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateWorkOrderRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	wo, err := h.service.CreateWorkOrder(c.UserContext(), username, service.WorkOrderCreateInput{
		TicketID:   req.TicketID,
		Details:    req.Details,
		AssignedTo: req.AssignedTo,
		Internal:   req.IsInternal,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkOrderResponse(wo)})
}

// SendNotification POST /workorders/sendnotification.
func (h *WorkOrdersHandler) SendNotification(c *fiber.Ctx) error {
	return h.act(c, h.service.SendNotification)
}

// AcceptWorkOrder POST /workorders/accept.
func (h *WorkOrdersHandler) AcceptWorkOrder(c *fiber.Ctx) error {
	return h.act(c, h.service.AcceptWorkOrder)
}

// CompleteWorkOrder POST /workorders/done.
func (h *WorkOrdersHandler) CompleteWorkOrder(c *fiber.Ctx) error {
	return h.act(c, h.service.CompleteWorkOrder)
}

// ListWorkOrders GET /workorders.
func (h *WorkOrdersHandler) ListWorkOrders(c *fiber.Ctx) error {
	workOrders, err := h.service.ListWorkOrders(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.WorkOrderResponse, 0, len(workOrders))
	for i := range workOrders {
		items = append(items, dto.NewWorkOrderResponse(&workOrders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetWorkOrder GET /workorders/:id.
func (h *WorkOrdersHandler) GetWorkOrder(c *fiber.Ctx) error {
	id, err := pathID(c, "workOrderId")
	if err != nil {
		return err
	}
	wo, err := h.service.GetWorkOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkOrderResponse(wo)})
}

type workOrderAction func(ctx context.Context, actor string, id int64) (*domain.WorkOrder, error)

func (h *WorkOrdersHandler) act(c *fiber.Ctx, action workOrderAction) error {
	username, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.WorkOrderIDRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	wo, err := action(c.UserContext(), username, req.WorkOrderID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkOrderResponse(wo)})
}
