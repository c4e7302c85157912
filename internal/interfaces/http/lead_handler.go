package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// LeadHandler handles the lead CRUD, listing and report endpoints.
type LeadHandler struct {
	uc  *leads.UseCase
	log *logger.Logger
}

// NewLeadHandler builds the lead handler.
func NewLeadHandler(uc *leads.UseCase, log *logger.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Create a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "lead fields"
// @Success      201   {object}  entity.Lead
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	lead, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// List godoc
// @Summary      List leads with filters and pagination
// @Tags         leads
// @Produce      json
// @Param        page   query  int     false  "page number (default 1)"
// @Param        limit  query  int     false  "page size (default 20, max 100)"
// @Param        status query  string  false  "status filter, repeatable"
// @Success      200    {object}  dto.LeadListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), queryParams(c))
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a lead by id
// @Tags         leads
// @Produce      json
// @Param        id  path  string  true  "lead id"
// @Success      200  {object}  entity.Lead
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	lead, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(lead)
}

// Update godoc
// @Summary      Update a lead (partial or full)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "lead id"
// @Param        body  body  dto.UpdateLeadRequest  true  "fields to replace"
// @Success      200   {object}  entity.Lead
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	lead, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(lead)
}

// Delete godoc
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Param        id  path  string  true  "lead id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeDomainError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Lead deleted successfully"})
}

// Report godoc
// @Summary      Export the filtered leads as a PDF report
// @Tags         leads
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leads/report [get]
func (h *LeadHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), GetUserID(c), GetUserName(c), queryParams(c))
	if err != nil {
		return writeDomainError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads-report.pdf"`)
	return c.Send(out)
}

// queryParams collects the full query string as a multimap. Fiber's Queries()
// keeps only the last value per key, which would drop repeated enum filters
// like ?status=new&status=won.
func queryParams(c *fiber.Ctx) map[string][]string {
	params := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		params[k] = append(params[k], string(value))
	})
	return params
}
